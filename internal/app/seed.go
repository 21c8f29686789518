package app

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/flowo/internal/model"
	"github.com/sandeepkv93/flowo/internal/storage"
)

func demoProperties() []model.Property {
	return []model.Property{
		{ID: "p1", Name: "Main Residence", Address: "123 Maple St"},
		{ID: "p2", Name: "Beach House", Address: "456 Ocean Ave"},
		{ID: "p3", Name: "City Apartment", Address: "789 Central Blvd"},
	}
}

func demoTasks() []model.MaintenanceTask {
	d := model.MustParseDate
	return []model.MaintenanceTask{
		{ID: "t1", PropertyID: "p1", Name: "Change water filter", Category: model.CategoryWaterFilter, LastCompleted: d("2024-06-01"), NextDue: d("2024-09-01")},
		{ID: "t2", PropertyID: "p1", Name: "Clean HVAC filter", Category: model.CategoryDeepCleaning, LastCompleted: d("2024-07-15"), NextDue: d("2024-10-15")},
		{ID: "t3", PropertyID: "p2", Name: "Inspect plumbing", Category: model.CategoryPlumber, LastCompleted: d("2024-01-10"), NextDue: d("2025-01-10")},
		{ID: "t4", PropertyID: "p1", Name: "Test smoke detectors", Category: model.CategoryElectrician, LastCompleted: d("2024-07-01"), NextDue: d("2025-01-01")},
		{ID: "t5", PropertyID: "p3", Name: "Service refrigerator", Category: model.CategoryFridgeRepair, LastCompleted: d("2023-12-20"), NextDue: d("2024-12-20")},
	}
}

// SeedDemo fills an empty app with sample properties and tasks. It does
// nothing when any property already exists.
func (a *App) SeedDemo(ctx context.Context) error {
	if len(a.properties) > 0 {
		return nil
	}
	now := a.deps.Now()
	props := demoProperties()
	tasks := demoTasks()
	if a.deps.Repo != nil {
		for _, p := range props {
			if err := a.deps.Repo.CreateProperty(ctx, storage.PropertyFromModel(p, now)); err != nil {
				return fmt.Errorf("seed property %s: %w", p.ID, err)
			}
		}
		for _, t := range tasks {
			if err := a.deps.Repo.CreateTask(ctx, storage.TaskFromModel(t, now)); err != nil {
				return fmt.Errorf("seed task %s: %w", t.ID, err)
			}
		}
	}
	a.properties = props
	a.tasks = tasks
	a.nav.SelectedPropertyID = props[0].ID
	a.deps.Logger.Printf("[App] Seeded %d demo properties and %d tasks", len(props), len(tasks))
	return nil
}
