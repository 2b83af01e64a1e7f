package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/widget-basket/internal/basket"
	"github.com/noah-isme/widget-basket/internal/catalog"
	"github.com/noah-isme/widget-basket/internal/pricing"
)

// BasketFactory creates a basket with delivery tiers and offers applied.
type BasketFactory func(c *catalog.Catalog) (*basket.Basket, error)

type color string

const (
	colorDefault color = "\033[0m"
	colorRed     color = "\033[0;31m"
	colorGreen   color = "\033[0;32m"
)

var menu = []string{
	"Add products to the basket",
	"Calculate total cost",
	"Clear basket",
	"Display product catalog",
	"Display basket",
	"Display delivery rules",
	"Exit",
}

// Config groups Console dependencies.
type Config struct {
	In        io.Reader
	Out       io.Writer
	Catalog   *catalog.Catalog
	NewBasket BasketFactory
	Logger    zerolog.Logger
	NoColor   bool
}

// Console is the interactive basket harness. It owns one basket at a time and
// replaces it wholesale when the shopper clears it.
type Console struct {
	in        *bufio.Scanner
	out       io.Writer
	catalog   *catalog.Catalog
	newBasket BasketFactory
	basket    *basket.Basket
	logger    zerolog.Logger
	noColor   bool
}

// New builds a Console with a fresh basket.
func New(cfg Config) (*Console, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("console: catalog is required")
	}
	if cfg.In == nil || cfg.Out == nil {
		return nil, errors.New("console: input and output are required")
	}
	if cfg.NewBasket == nil {
		cfg.NewBasket = func(c *catalog.Catalog) (*basket.Basket, error) { return basket.New(c), nil }
	}
	c := &Console{
		in:        bufio.NewScanner(cfg.In),
		out:       cfg.Out,
		catalog:   cfg.Catalog,
		newBasket: cfg.NewBasket,
		logger:    cfg.Logger,
		noColor:   cfg.NoColor,
	}
	if err := c.reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// Basket exposes the current basket.
func (c *Console) Basket() *basket.Basket { return c.basket }

// Run shows the menu and dispatches choices until the shopper exits,
// input ends or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.showMenu()
		choice, ok := c.prompt("\nEnter your option: ")
		if !ok {
			return nil
		}
		quit, err := c.Dispatch(choice)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Dispatch runs a single menu choice and reports whether the loop should stop.
func (c *Console) Dispatch(choice string) (bool, error) {
	switch strings.TrimSpace(choice) {
	case "1":
		c.addProducts()
	case "2":
		c.showTotal()
	case "3":
		if err := c.reset(); err != nil {
			return false, err
		}
		c.display("Basket reset. Start again.", colorGreen)
	case "4":
		c.showCatalog()
	case "5":
		c.showBasket()
	case "6":
		c.showDeliveryRules()
	case "7":
		return true, nil
	default:
		c.display("Invalid option. Please try again.", colorRed)
	}
	return false, nil
}

// Quote adds every code to the current basket and prints the total.
// It stops at the first unknown code.
func (c *Console) Quote(codes []string) error {
	for _, code := range codes {
		if err := c.basket.Add(strings.TrimSpace(code)); err != nil {
			c.display("Error: "+err.Error(), colorRed)
			return err
		}
	}
	c.showTotal()
	return nil
}

func (c *Console) reset() error {
	b, err := c.newBasket(c.catalog)
	if err != nil {
		return fmt.Errorf("console: new basket: %w", err)
	}
	c.basket = b
	return nil
}

func (c *Console) addProducts() {
	if c.catalog.Len() == 0 {
		c.display("No products found in catalog", colorRed)
		return
	}
	c.showCatalog()
	for {
		code, ok := c.prompt("Type product code to add to basket or press Enter to finish: ")
		if !ok || code == "" {
			return
		}
		if err := c.basket.Add(code); err != nil {
			c.logger.Debug().Err(err).Str("code", code).Msg("add product")
			c.display("Error: "+err.Error(), colorRed)
			continue
		}
		c.display("Product added to basket.", colorGreen)

		more, ok := c.prompt("Do you want to add another product? (yes/no): ")
		if !ok || strings.ToLower(more) != "yes" {
			return
		}
	}
}

func (c *Console) showTotal() {
	if !c.showBasket() {
		return
	}
	summary := c.basket.Quote()
	c.logger.Debug().
		Str("subtotal", summary.Subtotal.String()).
		Str("discount", summary.Discount.String()).
		Str("delivery", summary.Delivery.String()).
		Msg("basket priced")
	c.display("Total: $"+pricing.Format(summary.Total), colorGreen)
}

func (c *Console) showCatalog() {
	products := c.catalog.List()
	if len(products) == 0 {
		c.display("Product catalog is empty", colorDefault)
		return
	}
	c.display("Our product catalogue: ", colorDefault)
	for _, p := range products {
		c.display(p.String(), colorDefault)
	}
}

func (c *Console) showBasket() bool {
	items := c.basket.Items()
	if len(items) == 0 {
		c.display("Basket is empty.", colorDefault)
		return false
	}
	c.display("Your product basket: ", colorDefault)
	for _, p := range items {
		c.display(p.String(), colorDefault)
	}
	return true
}

func (c *Console) showDeliveryRules() {
	tiers := c.basket.DeliveryTiers()
	if len(tiers) == 0 {
		c.display("Delivery rules is empty", colorDefault)
		return
	}
	c.display("Our delivery rules: ", colorDefault)
	for _, t := range tiers {
		c.display(fmt.Sprintf("Limit: %s, Cost: %s", t.Threshold, pricing.Format(t.Cost)), colorDefault)
	}
}

func (c *Console) showMenu() {
	c.display("\nMenu\n", colorDefault)
	for i, item := range menu {
		c.display(fmt.Sprintf("%d. %s", i+1, item), colorDefault)
	}
}

func (c *Console) display(message string, col color) {
	c.write(message, col)
	_, _ = io.WriteString(c.out, "\n")
}

func (c *Console) write(message string, col color) {
	if c.noColor {
		_, _ = io.WriteString(c.out, message)
		return
	}
	_, _ = io.WriteString(c.out, string(col)+message+string(colorDefault))
}

// prompt prints message and reads one trimmed line; ok is false once input is exhausted.
func (c *Console) prompt(message string) (string, bool) {
	c.write(message, colorDefault)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
