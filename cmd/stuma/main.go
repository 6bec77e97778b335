// Command stuma is a terminal client for the student marketplace. It
// drives the same state managers the mobile UI binds to: login/register,
// catalog browse with category filter and search, sell, profile, and a
// cart/wishlist walkthrough.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"stuma/internal/api"
	"stuma/internal/config"
	"stuma/internal/domain"
	"stuma/internal/pricing"
	"stuma/internal/result"
	"stuma/internal/state"
	"stuma/internal/token"
)

const usage = `usage: stuma [-config file] <command> [args]

commands:
  register <name> <phone> <address> <email> <password>
  login <email> <password>
  logout
  items [category]            list items, optionally filtered
  search <query>              search by name or category
  item <id>                   show one item
  sell <name> <category> <description> <stock> <price>
  profile
  update-profile <name> <phone> <address>
  change-password <email> <old> <new>
  buy <id> <qty> <delivery>   price a purchase (Cepat | Sangat Cepat | Flash)
`

type app struct {
	client  *api.Client
	tokens  token.Store
	catalog *state.CatalogManager
	auth    *state.AuthManager
	profile *state.ProfileManager
	sell    *state.SellManager
}

func main() {
	configFile := flag.String("config", "", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	tokens := token.NewFileStore(cfg.TokenFile)
	client := api.NewClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, tokens)
	a := &app{
		client:  client,
		tokens:  tokens,
		catalog: state.NewCatalogManager(client),
		auth:    state.NewAuthManager(client),
		profile: state.NewProfileManager(client),
		sell:    state.NewSellManager(client),
	}

	if err := a.run(context.Background(), args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) != 5 {
			return fmt.Errorf("register needs 5 arguments")
		}
		<-a.auth.Register(ctx, domain.RegisterRequest{
			Name: args[0], Phone: args[1], Address: args[2], Email: args[3], Password: args[4],
		})
		return report(a.auth.RegisterState().Get(), func(ack domain.Ack) {
			fmt.Println(ack.Message)
		})

	case "login":
		if len(args) != 2 {
			return fmt.Errorf("login needs <email> <password>")
		}
		<-a.auth.Login(ctx, domain.LoginRequest{Email: args[0], Password: args[1]})
		return report(a.auth.LoginState().Get(), func(resp domain.LoginResponse) {
			fmt.Println(resp.Message)
		})

	case "logout":
		return a.tokens.Clear()

	case "items":
		if err := a.fetchCatalog(ctx); err != nil {
			return err
		}
		if len(args) == 1 {
			a.catalog.FilterByCategory(args[0])
		}
		printItems(a.catalog.Filtered().Get())
		return nil

	case "search":
		if len(args) != 1 {
			return fmt.Errorf("search needs <query>")
		}
		if err := a.fetchCatalog(ctx); err != nil {
			return err
		}
		a.catalog.Search(args[0])
		printItems(a.catalog.Filtered().Get())
		return nil

	case "item":
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("item needs a numeric id")
		}
		if err := a.fetchCatalog(ctx); err != nil {
			return err
		}
		it, ok := a.catalog.ItemByID(id)
		if !ok {
			return fmt.Errorf("no item with id %d", id)
		}
		fmt.Printf("%s (%s)\n%s\nstock %d, price %.0f, seller %s\n",
			it.Name, it.Category, it.Description, it.Stock, it.Price, it.SellerName)
		return nil

	case "sell":
		if len(args) != 5 {
			return fmt.Errorf("sell needs 5 arguments")
		}
		stock, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("stock must be an integer")
		}
		price, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return fmt.Errorf("price must be a number")
		}
		<-a.sell.Sell(ctx, domain.SellRequest{
			Name: args[0], Category: args[1], Description: args[2], Stock: stock, Price: price,
		})
		return report(a.sell.SellState().Get(), func(struct{}) {
			fmt.Println("item listed")
		})

	case "profile":
		<-a.profile.Fetch(ctx)
		return report(a.profile.ProfileState().Get(), func(p domain.Profile) {
			fmt.Printf("%s <%s>\nphone: %s\naddress: %s\n", p.Name, p.Email, p.Phone, p.Address)
		})

	case "update-profile":
		if len(args) != 3 {
			return fmt.Errorf("update-profile needs <name> <phone> <address>")
		}
		<-a.profile.Update(ctx, domain.UpdateProfileRequest{Name: args[0], Phone: args[1], Address: args[2]})
		return report(a.profile.UpdateState().Get(), func(ack domain.Ack) {
			fmt.Println(ack.Message)
		})

	case "change-password":
		if len(args) != 3 {
			return fmt.Errorf("change-password needs <email> <old> <new>")
		}
		<-a.auth.ChangePassword(ctx, domain.ChangePasswordRequest{
			Email: args[0], OldPassword: args[1], NewPassword: args[2],
		})
		return report(a.auth.ChangePasswordState().Get(), func(ack domain.Ack) {
			fmt.Println(ack.Message)
		})

	case "buy":
		if len(args) != 3 {
			return fmt.Errorf("buy needs <id> <qty> <delivery>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("id must be an integer")
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil || qty < 1 {
			return fmt.Errorf("qty must be a positive integer")
		}
		if err := a.fetchCatalog(ctx); err != nil {
			return err
		}
		it, ok := a.catalog.ItemByID(id)
		if !ok {
			return fmt.Errorf("no item with id %d", id)
		}

		cart := state.NewCartManager()
		for i := 0; i < qty; i++ {
			cart.Add(it)
		}
		got := cart.Quantity(it)
		if got < qty {
			fmt.Printf("only %d in stock; quantity capped\n", got)
		}
		fee := pricing.Fee(args[2])
		fmt.Printf("%d x %s @ %.0f\ndelivery (%s): %.0f\ntotal: %.0f\n",
			got, it.Name, it.Price, args[2], fee, pricing.Total(it.Price, got, args[2]))
		return nil

	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// fetchCatalog runs one fetch to completion and surfaces a failure as
// an error.
func (a *app) fetchCatalog(ctx context.Context) error {
	<-a.catalog.Fetch(ctx)
	if err := a.catalog.ItemsState().Get().Err(); err != nil {
		return err
	}
	return nil
}

// report maps a resolved Result onto CLI output: success runs fn,
// failure becomes the command's error.
func report[T any](r *result.Result[T], fn func(T)) error {
	if err := r.Err(); err != nil {
		return err
	}
	if v, ok := r.Value(); ok {
		fn(v)
		return nil
	}
	return fmt.Errorf("operation did not resolve")
}

func printItems(items []domain.Item) {
	if len(items) == 0 {
		fmt.Println("no items")
		return
	}
	for _, it := range items {
		fmt.Printf("%4d  %-30s %-11s stock %-3d %10.0f  %s\n",
			it.ID, it.Name, it.Category, it.Stock, it.Price, it.SellerName)
	}
}
