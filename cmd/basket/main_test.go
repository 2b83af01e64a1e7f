package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/widget-basket/internal/basket"
)

func TestRunQuoteMode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--no-color", "--quote", "B01,B01,R01,R01,R01"}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "Your product basket: ")
	require.Contains(t, stdout.String(), "Total: $98.27")
}

func TestRunQuoteModeUnknownCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--no-color", "--quote", "B01,Z01"}, strings.NewReader(""), &stdout, &stderr)
	require.ErrorIs(t, err, basket.ErrProductNotFound)
	require.Contains(t, stdout.String(), "Error: product not found")
}

func TestRunInteractiveExit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--no-color"}, strings.NewReader("4\n7\n"), &stdout, &stderr)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "1. Add products to the basket")
	require.Contains(t, stdout.String(), "G01 - Green Widget ($24.95)")
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--bogus"}, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
}
