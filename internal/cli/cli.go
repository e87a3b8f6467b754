package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/CharvitZalavadiya/GormishRestaurant/internal/board"
	"github.com/CharvitZalavadiya/GormishRestaurant/internal/orderapi"

	"go.uber.org/zap"
)

// Runner is the terminal frontend for the order board: the status tabs, the
// search box, the card grid and the detail view, all driven from a REPL.
type Runner struct {
	options Options
	logger  *zap.Logger
	board   *board.Board
	search  string
}

func NewRunner(logger *zap.Logger, b *board.Board) *Runner {
	logger = logger.Named("cli")

	r := &Runner{
		logger: logger,
		board:  b,
	}
	b.SetNotifier(&printNotifier{logger: logger})
	return r
}

// printNotifier is the transient-notification sink: one line on the terminal,
// mirrored into the log.
type printNotifier struct {
	logger *zap.Logger
}

func (n *printNotifier) Success(msg string) {
	fmt.Fprintf(os.Stdout, "[ok] %s\n", msg)
	n.logger.Info("notification", zap.String("msg", msg))
}

func (n *printNotifier) Error(msg string) {
	fmt.Fprintf(os.Stdout, "[error] %s\n", msg)
	n.logger.Warn("notification", zap.String("msg", msg))
}

func (r *Runner) Execute() error {
	fs := flag.NewFlagSet("gormish-orders", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [command]\n", fs.Name())
		fmt.Fprintln(os.Stderr, "Commands: list, show <id>, approve <id>, reject <id>, status <id> <new>")
		fmt.Fprintln(os.Stderr, "Without a command an interactive session starts.")
		fs.PrintDefaults()
	}

	fs.BoolVar(&r.options.JSON, "json", false, "Output JSON format")
	fs.StringVar(&r.options.Tab, "tab", string(board.StatusPending), "Initial status tab (pending, preparing, ready)")
	fs.StringVar(&r.options.Search, "search", "", "Initial search query")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			fs.Usage()
			return nil
		}
		return err
	}

	if err := r.board.SetTab(board.ParseStatus(r.options.Tab)); err != nil {
		return err
	}
	r.search = strings.TrimSpace(r.options.Search)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if args := fs.Args(); len(args) > 0 {
		return r.runCommand(ctx, args)
	}
	return r.runREPL(ctx)
}

func (r *Runner) runREPL(ctx context.Context) error {
	reader := bufio.NewScanner(os.Stdin)
	fmt.Fprintln(os.Stdout, "Gormish order board (type 'help' for commands, 'exit' to quit)")

	for {
		fmt.Fprintf(os.Stdout, "%s> ", r.board.ActiveTab())
		if !reader.Scan() {
			return reader.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(reader.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			return nil
		}

		if err := r.runCommand(ctx, strings.Fields(line)); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(os.Stdout, "[error] %s\n", friendlyError(err))
		}
	}
}

func (r *Runner) runCommand(ctx context.Context, args []string) error {
	cmd := strings.ToLower(args[0])
	rest := args[1:]

	switch cmd {
	case "help":
		printHelp()
		return nil
	case "tab":
		if len(rest) != 1 {
			return fmt.Errorf("usage: tab <%s>", tabList())
		}
		if err := r.board.SetTab(board.Status(strings.ToLower(rest[0]))); err != nil {
			return err
		}
		return r.list()
	case "search":
		r.search = strings.Join(rest, " ")
		return r.list()
	case "list":
		return r.list()
	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("usage: show <order-id or list position>")
		}
		return r.show(rest[0])
	case "approve":
		if len(rest) != 1 {
			return fmt.Errorf("usage: approve <order-id>")
		}
		return r.board.Approve(ctx, rest[0])
	case "reject":
		if len(rest) != 1 {
			return fmt.Errorf("usage: reject <order-id>")
		}
		return r.board.Reject(ctx, rest[0])
	case "status":
		if len(rest) != 2 {
			return fmt.Errorf("usage: status <order-id> <%s|%s>", board.StatusReady, board.StatusDispatch)
		}
		return r.board.ChangeStatus(ctx, rest[0], board.Status(strings.ToLower(rest[1])))
	case "refresh":
		return r.board.Refresh(ctx, true)
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func (r *Runner) list() error {
	orders := r.board.VisibleOrders(r.search)
	if r.options.JSON {
		return writeJSONList(os.Stdout, orders)
	}
	writeCards(os.Stdout, orders, r.board.ActiveTab(), r.search)
	return nil
}

func (r *Runner) show(ref string) error {
	order, ok := r.resolveOrder(ref)
	if !ok {
		return fmt.Errorf("%w: %s", board.ErrUnknownOrder, ref)
	}
	if r.options.JSON {
		return writeJSONDetail(os.Stdout, order)
	}
	writeDetail(os.Stdout, order)
	return nil
}

// resolveOrder accepts either an order id or a 1-based position in the
// currently visible list. An exact id always wins, so numeric ids stay
// reachable.
func (r *Runner) resolveOrder(ref string) (board.Order, bool) {
	if order, ok := r.board.Find(ref); ok {
		return order, true
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 {
		visible := r.board.VisibleOrders(r.search)
		if n <= len(visible) {
			return visible[n-1], true
		}
	}
	return board.Order{}, false
}

func printHelp() {
	fmt.Fprintln(os.Stdout, "Commands:")
	fmt.Fprintf(os.Stdout, "  tab <%s>   switch status tab\n", tabList())
	fmt.Fprintln(os.Stdout, "  search <text>                 filter current tab (search alone clears)")
	fmt.Fprintln(os.Stdout, "  list                          show the current tab's order cards")
	fmt.Fprintln(os.Stdout, "  show <id|n>                   full detail for one order, by id or list position")
	fmt.Fprintln(os.Stdout, "  approve <id>                  accept a pending order")
	fmt.Fprintln(os.Stdout, "  reject <id>                   refuse an order (removed from board)")
	fmt.Fprintln(os.Stdout, "  status <id> <ready|dispatch>  move an order forward")
	fmt.Fprintln(os.Stdout, "  refresh                       fetch now, bypassing the cache")
	fmt.Fprintln(os.Stdout, "  exit                          quit")
}

func tabList() string {
	parts := make([]string, 0, len(board.Tabs()))
	for _, t := range board.Tabs() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, "|")
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, board.ErrUnknownOrder):
		return "No such order on the board. Check the id with 'list'."
	case errors.Is(err, board.ErrInvalidTransition):
		return "That status change is not allowed from the order's current state."
	case errors.Is(err, orderapi.ErrUnauthorized):
		return "No access: check the API token."
	case errors.Is(err, orderapi.ErrRateLimited):
		return "Too many requests. Try again in a moment."
	case errors.Is(err, orderapi.ErrMissingRestaurantID):
		return "A restaurant id is required: set RESTAURANT_ID."
	default:
		if err == nil {
			return ""
		}
		return err.Error()
	}
}
