package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"

	"travelapi/internal/blog"
	"travelapi/internal/catalog"
	"travelapi/internal/contact"
	"travelapi/internal/slug"
	"travelapi/pkg/config"
	"travelapi/pkg/db"
)

// Seeds a dev database with enough content to click through the site and
// the back-office. Safe to run repeatedly only against a fresh database;
// slugs are unique.
func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open failed: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	for _, p := range []catalog.PackageParams{
		{
			Title:        "Goa Beach Escape",
			Summary:      "Four days of sun, sand and seafood on the north Goa coastline.",
			Destination:  "Goa",
			DurationDays: 4,
			Price:        "24999",
			Currency:     "INR",
			Highlights:   []string{"Candolim beach stay", "Sunset cruise", "Old Goa heritage walk"},
			Inclusions:   []string{"Breakfast", "Airport transfers"},
			Exclusions:   []string{"Airfare"},
			Itinerary: []catalog.ItineraryDay{
				{Day: 1, Title: "Arrival", Detail: "Check-in and leisure evening at Candolim"},
				{Day: 2, Title: "North Goa tour", Detail: "Fort Aguada, Baga and Anjuna"},
				{Day: 3, Title: "Sunset cruise", Detail: "Mandovi river cruise with dinner"},
				{Day: 4, Title: "Departure"},
			},
			FAQs: []catalog.FAQ{
				{Question: "Is airfare included?", Answer: "No, the package starts at Goa airport."},
			},
			Accommodations: []catalog.Accommodation{
				{Name: "Taj Holiday Village", Location: "Candolim", Nights: 3},
			},
		},
		{
			Title:        "Kerala Backwaters Retreat",
			Summary:      "Houseboats, hill stations and spice gardens across six days.",
			Destination:  "Kerala",
			DurationDays: 6,
			Price:        "38500",
			Currency:     "INR",
			Highlights:   []string{"Alleppey houseboat night", "Munnar tea estates"},
			Inclusions:   []string{"Breakfast", "Houseboat meals"},
			Exclusions:   []string{"Airfare", "Lunch on road days"},
		},
	} {
		p.Slug = slug.Make(p.Title)
		err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
			_, err := catalog.Create(ctx, tx, p)
			return err
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed package %q: %v\n", p.Title, err)
			os.Exit(1)
		}
	}

	for _, p := range []blog.PostParams{
		{
			Title:   "Five beaches you should not miss in Goa",
			Excerpt: "Beyond Baga: the quieter stretches locals keep to themselves.",
			Body:    "Agonda, Cola, Kakolem...",
			Tags:    []string{"goa", "beach"},
			Author:  "Asha Nair",
		},
	} {
		p.Slug = slug.Make(p.Title)
		err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
			_, err := blog.Create(ctx, tx, p)
			return err
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed post %q: %v\n", p.Title, err)
			os.Exit(1)
		}
	}

	contacts := contact.NewRepository(pool)
	if _, err := contacts.Create(ctx, "John Doe", "john@example.com", "", "Honeymoon ideas", "Looking for a quiet beach destination in December."); err != nil {
		fmt.Fprintf(os.Stderr, "seed contact: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("seed data inserted")
}
