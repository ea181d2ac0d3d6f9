package commands

import (
	"context"
	"fmt"

	"github.com/yavijexpress/rideshare-cli/internal/session"
)

type PaymentsCmd struct {
	History PaymentsHistoryCmd `cmd:"" help:"Show your payment history"`
	Booking PaymentsBookingCmd `cmd:"" help:"Show the payment for a booking"`
	Cash    PaymentsCashCmd    `cmd:"" help:"Record a cash payment for a booking"`
}

type PaymentsHistoryCmd struct {
	ClientFlags
}

func (p *PaymentsHistoryCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, p.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RolePassenger); err != nil {
		return err
	}

	payments, err := app.API.UserPayments(ctx, currentSession(app).UserID)
	if err != nil {
		return fmt.Errorf("failed to list payments: %w", err)
	}

	if len(payments) == 0 {
		fmt.Println("No payments found")
		return nil
	}

	fmt.Printf("%-8s %-10s %-10s %-10s %-20s %s\n", "ID", "Booking", "Amount", "Method", "Paid At", "Status")
	for _, payment := range payments {
		fmt.Printf("%-8d %-10s %-10.2f %-10s %-20s %s\n",
			payment.ID, payment.BookingID, payment.Amount, payment.Method, payment.PaidAt, payment.Status)
	}
	fmt.Printf("\nTotal payments: %d\n", len(payments))
	return nil
}

type PaymentsBookingCmd struct {
	ClientFlags
	ID int64 `arg:"" help:"Booking id"`
}

func (p *PaymentsBookingCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, p.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RolePassenger); err != nil {
		return err
	}

	payment, err := app.API.BookingPayment(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch payment: %w", err)
	}

	fmt.Printf("payment %d: %.2f via %s (%s)\n", payment.ID, payment.Amount, payment.Method, payment.Status)
	return nil
}

type PaymentsCashCmd struct {
	ClientFlags
	ID int64 `arg:"" help:"Booking id"`
}

func (p *PaymentsCashCmd) Run(ctx context.Context, globals *Globals) error {
	app, teardown, err := setup(globals, p.ClientFlags)
	if err != nil {
		return err
	}
	defer teardown()

	if err := requireRoles(app, session.RolePassenger); err != nil {
		return err
	}

	payment, err := app.API.PayCash(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to record cash payment: %w", err)
	}

	fmt.Printf("Cash payment of %.2f recorded for booking %s (%s)\n",
		payment.Amount, payment.BookingID, payment.Status)
	return nil
}
