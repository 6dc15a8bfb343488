// Command bookingadmin is a small operational tool for the Bookings store:
// it can look up, delete, or count consultation bookings directly, bypassing
// the HTTP surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	bookingserrors "consultly/internal/bookings/errors"
	"consultly/internal/bookings/repository"
	"consultly/pkg/config"
)

const ServiceName = "bookingadmin"

func main() {
	op := flag.String("op", "", "operation: find, delete, or count")
	email := flag.String("email", "", "booking email (find, delete)")
	date := flag.String("date", "", "preferred date in YYYY-MM-DD form (find, delete)")
	flag.Parse()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	repo := repository.NewMongoBookingRepository(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch *op {
	case "find":
		requireEmailAndDate(*email, *date)
		booking, err := repo.FindByEmailAndDate(ctx, normalizeEmail(*email), strings.TrimSpace(*date))
		if err != nil {
			if err == bookingserrors.ErrNotFound {
				fmt.Println("No booking found")
				os.Exit(1)
			}
			fatal("find failed: %v", err)
		}
		fmt.Printf("Booking %s: %s <%s> on %s for %s\n",
			booking.ID.Hex(), booking.Name, booking.Email, booking.PreferredDate, booking.Service)

	case "delete":
		requireEmailAndDate(*email, *date)
		deleted, err := repo.DeleteByEmailAndDate(ctx, normalizeEmail(*email), strings.TrimSpace(*date))
		if err != nil {
			fatal("delete failed: %v", err)
		}
		fmt.Printf("Deleted %d booking(s)\n", deleted)

	case "count":
		count, err := repo.Count(ctx)
		if err != nil {
			fatal("count failed: %v", err)
		}
		fmt.Printf("Total bookings: %d\n", count)

	default:
		fmt.Fprintln(os.Stderr, "usage: bookingadmin -op=find|delete|count [-email=... -date=YYYY-MM-DD]")
		os.Exit(2)
	}
}

func requireEmailAndDate(email, date string) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(date) == "" {
		fatal("both -email and -date are required for this operation")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
