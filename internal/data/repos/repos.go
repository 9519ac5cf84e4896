package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/cablehouse-backend/internal/data/repos/blueprint"
	"github.com/yungbote/cablehouse-backend/internal/data/repos/order"
	"github.com/yungbote/cablehouse-backend/internal/data/repos/user"
	"github.com/yungbote/cablehouse-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type BlueprintRepo = blueprint.BlueprintRepo
type OrderRepo = order.OrderRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewBlueprintRepo(db *gorm.DB, baseLog *logger.Logger) BlueprintRepo {
	return blueprint.NewBlueprintRepo(db, baseLog)
}
func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return order.NewOrderRepo(db, baseLog)
}
