package main

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/storefront/app/telemetry"
	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/models"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "seed", "cart"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}

	for _, flag := range []string{"env-file", "db", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestRootCommand_InvalidLogFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--log-format", "xml", "migrate"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	assert.ErrorContains(t, err, "invalid log format")
}

func TestCartClear_RequiresToken(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"cart", "clear"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	assert.Error(t, cmd.Execute())
}

func TestNewEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	em, closeFn, err := newEmitter(config.Config{}, logger)
	require.NoError(t, err)
	assert.IsType(t, telemetry.LogEmitter{}, em)
	closeFn()

	em, closeFn, err = newEmitter(config.Config{PostHogAPIKey: "phc_test", PostHogHost: "http://127.0.0.1:1"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &telemetry.PostHogEmitter{}, em)
	closeFn()
}

func TestCartCommand_Subcommands(t *testing.T) {
	cmd := NewCartCommand(&RootOptions{})

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "clear"}, names)
}

func TestPrintCart(t *testing.T) {
	items := []models.CartItem{
		{ID: 7, Quantity: 3, Product: models.Product{Name: "Ceramic Mug", Price: decimal.RequireFromString("12.00")}},
		{ID: 9, Quantity: 1, Product: models.Product{Name: "Desk Lamp", Price: decimal.RequireFromString("19.99")}},
	}

	var buf bytes.Buffer
	printCart(&buf, items)

	out := buf.String()
	assert.Contains(t, out, "Ceramic Mug")
	assert.Contains(t, out, "36.00")
	assert.Contains(t, out, "subtotal 55.99  tax 5.60  total 61.59")
}

func TestPrintCart_Empty(t *testing.T) {
	var buf bytes.Buffer
	printCart(&buf, nil)

	assert.Equal(t, "cart is empty\n", buf.String())
}
