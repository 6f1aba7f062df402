package props

import (
	"context"
	"fmt"
)

// SampleProps returns the starter catalog used for empty databases.
func SampleProps() []Input {
	return []Input{
		{
			Name:        "Back to the Future Hoverboard",
			Description: "Original prop hoverboard from Back to the Future Part II. This screen-used prop features the iconic pink coloring and green foot pad.",
			Price:       12999.99,
			PrintCost:   299.99,
			Category:    "Transportation",
			Images: URLList{
				"https://images.unsplash.com/photo-1514036783265-fba9577ea01d?w=600",
				"https://images.unsplash.com/photo-1513116476489-7635e79feb27?w=600",
			},
		},
		{
			Name:        "Indiana Jones Hat",
			Description: "Screen-worn fedora from Raiders of the Lost Ark. Features the iconic brown felt and distressed finish.",
			Price:       25000.00,
			PrintCost:   149.99,
			Category:    "Costumes",
			Images: URLList{
				"https://images.unsplash.com/photo-1521369909029-2afed882baee?w=600",
			},
		},
		{
			Name:        "Star Wars Lightsaber",
			Description: "Original lightsaber prop used by Mark Hamill in Star Wars: A New Hope. Includes display case and authenticity certificate.",
			Price:       45000.00,
			PrintCost:   499.99,
			Category:    "Weapons",
			Images: URLList{
				"https://images.unsplash.com/photo-1472457897821-70d3819a0e24?w=600",
			},
		},
		{
			Name:        "Jurassic Park Night Vision Goggles",
			Description: "Screen-matched night vision goggles as seen in the original Jurassic Park. Fully functional with green LED display.",
			Price:       4999.99,
			PrintCost:   199.99,
			Category:    "Accessories",
			Images: URLList{
				"https://images.unsplash.com/photo-1589578228447-e1a4e481c6c8?w=600",
			},
		},
	}
}

// SeedIfEmpty inserts the sample catalog when the props table has no rows.
// It reports whether seeding ran.
func SeedIfEmpty(ctx context.Context, store Store) (bool, error) {
	count, err := store.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count props: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	for _, in := range SampleProps() {
		if _, err := store.Create(ctx, in); err != nil {
			return false, fmt.Errorf("seed prop %q: %w", in.Name, err)
		}
	}
	return true, nil
}
