package domain

import (
	"errors"
	"testing"
	"time"
)

func TestOrderLifecycleFromBlueprint(t *testing.T) {
	bp := Blueprint{
		Name:       "RG-6 Coax",
		Dimensions: []Dimension{{Label: "Length", Value: "50m"}},
	}
	o := NewOrder(bp.Snapshot(), RandomReference())

	if o.Status != StatusPending || o.StartTime != nil || o.EndTime != nil {
		t.Fatalf("new order: %+v", o)
	}
	if !ValidReference(o.Reference) {
		t.Fatalf("reference out of range: %d", o.Reference)
	}
	if len(o.Dimensions) != 1 || o.Dimensions[0] != (Dimension{Label: "Length", Value: "50m"}) {
		t.Fatalf("dimensions: %+v", o.Dimensions)
	}

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := o.Transition(StatusInProgress, start); err != nil {
		t.Fatalf("start: %v", err)
	}
	if o.Status != StatusInProgress || o.StartTime == nil || !o.StartTime.Equal(start) {
		t.Fatalf("after start: %+v", o)
	}
	if got := o.Elapsed(start.Add(-time.Second)); got != 0 {
		t.Fatalf("elapsed before start must clamp to 0, got %s", got)
	}
	if got := o.Elapsed(start.Add(65 * time.Second)); got != 65*time.Second {
		t.Fatalf("elapsed while running: %s", got)
	}

	end := start.Add(12*time.Minute + 7*time.Second)
	if err := o.Transition(StatusFinished, end); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if o.EndTime == nil || !o.EndTime.Equal(end) {
		t.Fatalf("after finish: %+v", o)
	}
	want := end.Sub(start)
	if got := o.Elapsed(end.Add(time.Hour)); got != want {
		t.Fatalf("elapsed after finish: want=%s got=%s", want, got)
	}
	if FormatElapsed(want) != "12:07" {
		t.Fatalf("format: %s", FormatElapsed(want))
	}
}

func TestOrderRejectsIllegalTransitions(t *testing.T) {
	now := time.Now()
	o := NewOrder(OrderSnapshot{Name: "x"}, 1234)
	if err := o.Transition(StatusFinished, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Pending->Finished: expected ErrInvalidTransition, got %v", err)
	}
	if o.Status != StatusPending || o.EndTime != nil {
		t.Fatalf("rejected transition mutated order: %+v", o)
	}
	if err := o.Transition(StatusInProgress, now); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := o.Transition(StatusFinished, now); err != nil {
		t.Fatalf("finish: %v", err)
	}
	for _, to := range []OrderStatus{StatusPending, StatusInProgress, StatusFinished} {
		if err := o.Transition(to, now); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Finished->%s: expected ErrInvalidTransition, got %v", to, err)
		}
	}
	if err := o.Transition("Shipped", now); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("unknown status: expected ErrInvalidStatus, got %v", err)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	bp := Blueprint{
		Name:       "Cat6",
		Dimensions: []Dimension{{Label: "Length", Value: "2m"}},
		Images:     []string{"data:image/png;base64,AAA"},
	}
	o := NewOrder(bp.Snapshot(), 4321)
	bp.Dimensions[0].Value = "9m"
	bp.Images[0] = "changed"
	bp.Name = "renamed"

	if o.Name != "Cat6" || o.Dimensions[0].Value != "2m" || o.Images[0] != "data:image/png;base64,AAA" {
		t.Fatalf("order shares state with blueprint: %+v", o)
	}
}

func TestFilterDimensions(t *testing.T) {
	got := FilterDimensions([]Dimension{
		{Label: "Length", Value: "1m"},
		{Label: "  ", Value: "ignored"},
		{Label: "", Value: ""},
		{Label: "Gauge", Value: ""},
	})
	if len(got) != 2 || got[0].Label != "Length" || got[1].Label != "Gauge" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := map[time.Duration]string{
		0:                                     "00:00",
		-time.Second:                          "00:00",
		59 * time.Second:                      "00:59",
		61*time.Second + 900*time.Millisecond: "01:01",
		125 * time.Minute:                     "125:00",
	}
	for d, want := range cases {
		if got := FormatElapsed(d); got != want {
			t.Fatalf("FormatElapsed(%s): want=%s got=%s", d, want, got)
		}
	}
}
