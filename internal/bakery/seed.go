package bakery

import (
	"context"
	"fmt"
	"log/slog"
)

type seedBakery struct {
	name  string
	goods []seedGood
}

type seedGood struct {
	name  string
	price float64
}

var seedData = []seedBakery{
	{
		name: "Delightful donuts",
		goods: []seedGood{
			{"Chocolate dipped donut", 2.75},
			{"Apple-spice filled donut", 3.50},
			{"Maple glazed cruller", 2.25},
		},
	},
	{
		name: "Incredible crullers",
		goods: []seedGood{
			{"Glazed honey cruller", 3.00},
			{"Plain cruller", 1.75},
		},
	},
	{
		name: "Crumb and Crust",
		goods: []seedGood{
			{"Sourdough boule", 7.50},
			{"Almond croissant", 4.25},
			{"Cardamom bun", 4.00},
		},
	},
}

// Seed populates an empty database with sample bakeries and baked goods.
// It does nothing when any bakery already exists, so it is safe to run on
// every start. Returns the number of bakeries inserted.
func Seed(ctx context.Context, repo Repository, logger *slog.Logger) (int, error) {
	count, err := repo.CountBakeries(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking bakery count: %w", err)
	}
	if count > 0 {
		logger.Info("bakeries exist, skipping seed", "count", count)
		return 0, nil
	}

	var goods int
	for _, sb := range seedData {
		b := &Bakery{Name: sb.name}
		if err := repo.CreateBakery(ctx, b); err != nil {
			return 0, fmt.Errorf("seeding bakery %q: %w", sb.name, err)
		}
		for _, sg := range sb.goods {
			g := &BakedGood{Name: sg.name, Price: sg.price, BakeryID: b.ID}
			if err := repo.CreateBakedGood(ctx, g); err != nil {
				return 0, fmt.Errorf("seeding baked good %q: %w", sg.name, err)
			}
			goods++
		}
	}

	logger.Info("seeded sample data", "bakeries", len(seedData), "baked_goods", goods)
	return len(seedData), nil
}
