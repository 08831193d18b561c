package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mytheresa/storefront/app/pricing"
	"github.com/mytheresa/storefront/app/respond"
	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/models"
)

func NewCartCommand(root *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect or reset carts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <session-token>",
		Short: "Show the line items and totals of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withDB(cmd.Context(), func(_ config.Config, _ *slog.Logger, db *gorm.DB) error {
				items, err := models.NewCartRepository(db).List(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printCart(cmd.OutOrStdout(), items)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <session-token>",
		Short: "Delete every line item of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withDB(cmd.Context(), func(_ config.Config, _ *slog.Logger, db *gorm.DB) error {
				n, err := models.NewCartRepository(db).Clear(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d line item(s)\n", n)
				return nil
			})
		},
	})

	return cmd
}

func printCart(out io.Writer, items []models.CartItem) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(out, "cart is empty")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPRODUCT\tQTY\tPRICE\tLINE TOTAL")
	for _, it := range items {
		line := pricing.Line{Price: it.Product.Price, Quantity: it.Quantity}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			it.ID,
			it.Product.Name,
			it.Quantity,
			it.Product.Price.StringFixed(2),
			line.Amount().StringFixed(2),
		)
	}
	_ = w.Flush()

	totals := pricing.Compute(pricing.FromCart(items))
	_, _ = fmt.Fprintf(out, "\nsubtotal %.2f  tax %.2f  total %.2f\n",
		respond.Money(totals.Subtotal),
		respond.Money(totals.Tax),
		respond.Money(totals.Total),
	)
}
