package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PxPatel/crypto-fulfillment/config"
	"github.com/PxPatel/crypto-fulfillment/internal/exchange"
	"github.com/PxPatel/crypto-fulfillment/internal/fulfillment"
	"github.com/PxPatel/crypto-fulfillment/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	exchanges, err := exchange.LoadAll(cfg.Exchange.DataPaths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load exchange data: %v\n", err)
		os.Exit(1)
	}

	// No sink: the console prints its own output
	engine := fulfillment.NewEngine(nil)
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Loaded %d exchange(s)\n", len(exchanges.GetExchanges()))

	for {
		fmt.Println()
		fmt.Println("1) Buy")
		fmt.Println("2) Sell")
		fmt.Println("3) Show exchanges")
		fmt.Println("4) Quit")
		fmt.Print("> ")

		choice, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		switch strings.TrimSpace(choice) {
		case "1":
			runOrder(engine, exchanges, types.Buy, reader)
		case "2":
			runOrder(engine, exchanges, types.Sell, reader)
		case "3":
			printExchanges(exchanges)
		case "4":
			return
		default:
			fmt.Println("Unknown option")
		}
	}
}

func runOrder(engine *fulfillment.Engine, exchanges exchange.Service, side types.Side, reader *bufio.Reader) {
	quantity, ok := readDecimal(reader, "Quantity: ")
	if !ok {
		return
	}

	prompt := "Maximum price per unit: "
	if side == types.Sell {
		prompt = "Minimum price per unit: "
	}
	price, ok := readDecimal(reader, prompt)
	if !ok {
		return
	}

	order := types.NewIncomingOrder(side, quantity, price)
	txn, err := engine.Fulfill(exchanges.Snapshot(), order)
	if err != nil {
		fmt.Printf("Order rejected: %v\n", err)
		return
	}

	printTransaction(txn)
}

func readDecimal(reader *bufio.Reader, prompt string) (decimal.Decimal, bool) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return decimal.Zero, false
	}

	value, err := decimal.NewFromString(strings.TrimSpace(line))
	if err != nil || !value.IsPositive() {
		fmt.Println("Please enter a positive number")
		return decimal.Zero, false
	}
	return value, true
}

func printTransaction(txn *types.Transaction) {
	fmt.Printf("\nTransaction %s (%s)\n", txn.ID, txn.Side)
	fmt.Printf("  filled:      %s\n", txn.FilledQuantity)
	fmt.Printf("  total cost:  %s\n", txn.TotalCost)
	fmt.Printf("  unfulfilled: %s\n", txn.UnfulfilledQuantity)

	if len(txn.Fills) == 0 {
		fmt.Println("  no liquidity available for this order")
		return
	}

	for _, fill := range txn.Fills {
		fmt.Printf("  %s: took %s @ %s (cost %s) from order %s\n",
			fill.ExchangeID, fill.QuantityTaken, fill.Price, fill.CostPaid, fill.OrderID)
	}
}

func printExchanges(exchanges exchange.Service) {
	for _, exch := range exchanges.GetExchanges() {
		fmt.Printf("\n%s\n", exch.ID)
		fmt.Printf("  crypto: %s  fiat: %s\n",
			exch.AvailableFunds.Crypto, exch.AvailableFunds.Fiat)
		fmt.Printf("  asks: %d  bids: %d\n",
			len(exch.OrderBook.Asks), len(exch.OrderBook.Bids))
	}
}
