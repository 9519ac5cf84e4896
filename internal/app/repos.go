package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/data/repos"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
)

type Repos struct {
	User      repos.UserRepo
	Blueprint repos.BlueprintRepo
	Order     repos.OrderRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		Blueprint: repos.NewBlueprintRepo(db, log),
		Order:     repos.NewOrderRepo(db, log),
	}
}
