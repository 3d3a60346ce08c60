package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/dharmasatrya/ticketkini/internal/api"
	"github.com/dharmasatrya/ticketkini/internal/booking"
	"github.com/dharmasatrya/ticketkini/internal/cache"
	"github.com/dharmasatrya/ticketkini/internal/config"
	"github.com/dharmasatrya/ticketkini/internal/history"
	"github.com/dharmasatrya/ticketkini/internal/logging"
	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/notify"
	"github.com/dharmasatrya/ticketkini/internal/ranking"
	"github.com/dharmasatrya/ticketkini/internal/ratelimit"
	"github.com/dharmasatrya/ticketkini/internal/results"
	"github.com/dharmasatrya/ticketkini/internal/search"
	"github.com/dharmasatrya/ticketkini/internal/session"
	"github.com/dharmasatrya/ticketkini/internal/storage"
	"github.com/dharmasatrya/ticketkini/internal/ui"
)

const usage = `usage: ticketctl [--config file] <command> [flags]

commands:
  login          sign in and keep the token locally
  logout         sign out and forget the token
  whoami         show the signed-in user
  search         search trips for a route and date
  bookings       list your bookings with their payments
  booking ID     show one booking
  cancel ID      cancel a booking
  ticket ID      save a booking's e-ticket as PDF
  notifications  list, mark read, or follow notifications
`

type app struct {
	cfg     config.Config
	logger  *slog.Logger
	client  *api.Client
	store   *storage.SQLiteStore
	session *session.Manager
	out     io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "ticketctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("ticketctl", flag.ContinueOnError)
	global.SetInterspersed(false)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	configPath := global.String("config", "", "path to a YAML config file")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("no command given")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log, os.Stderr)

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	client := api.NewClient(api.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout},
		ratelimit.NewEndpointLimiter(cfg.RateLimit))

	a := &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		store:   store,
		session: session.NewManager(client, store, logger),
		out:     out,
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "search":
		return a.search(ctx, rest)
	case "bookings":
		return a.bookings(ctx, rest)
	case "booking":
		return a.bookingDetail(ctx, rest)
	case "cancel":
		return a.cancel(ctx, rest)
	case "ticket":
		return a.ticket(ctx, rest)
	case "notifications":
		return a.notifications(ctx, rest)
	}
	global.Usage()
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.StringP("email", "e", "", "account email")
	password := fs.StringP("password", "p", "", "account password (or TICKETKINI_PASSWORD)")
	admin := fs.Bool("admin", false, "sign in through the admin endpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv("TICKETKINI_PASSWORD")
	}

	user, err := a.session.Login(ctx, models.Credentials{Email: *email, Password: *password}, *admin)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}
	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(a.out, "%s <%s> id=%d role=%s\n", user.Name, user.Email, user.ID, role)
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	var req models.SearchRequest
	fs.StringVar(&req.Source, "from", "", "departure city")
	fs.StringVar(&req.Destination, "to", "", "arrival city")
	fs.StringVar(&req.TravelDate, "date", "", "travel date, YYYY-MM-DD")
	fs.StringVar(&req.VehicleType, "type", "", "bus, train or launch")
	sortKey := fs.String("sort", string(ranking.DefaultSortKey), "sort order")
	page := fs.Int("page", 1, "results page")
	classes := fs.StringSlice("class", nil, "AC and/or Non-AC")
	departure := fs.String("departure", "", "early-morning, afternoon, evening or night")
	operators := fs.StringSlice("operator", nil, "operator names")
	minPrice := fs.Float64("min-price", 0, "lowest fare")
	maxPrice := fs.Float64("max-price", math.MaxFloat64, "highest fare")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := models.FilterState{
		VehicleTypes: *classes,
		Departure:    models.DepartureWindow(strings.ToLower(*departure)),
		Operators:    *operators,
	}
	if state.Departure != "" && !state.Departure.Valid() {
		return fmt.Errorf("unknown departure window %q", *departure)
	}
	if fs.Changed("min-price") || fs.Changed("max-price") {
		state.Price = &models.PriceRange{Min: *minPrice, Max: *maxPrice}
	}

	tripCache := a.tripCache()
	defer tripCache.Close()

	trips, err := search.NewService(a.client, tripCache, a.logger).Search(ctx, req)
	if err != nil {
		return err
	}

	// Only the final state is printed.
	var last results.View
	s := results.NewSession(results.RendererFunc(func(v results.View) error {
		last = v
		return nil
	}), a.logger)
	if err := s.Load(trips); err != nil {
		return err
	}
	if err := s.SetFilters(state); err != nil {
		return err
	}
	if err := s.SetSort(ranking.ParseSortKey(*sortKey)); err != nil {
		return err
	}
	if err := s.SetPage(*page); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ui.RenderResults(last))
	return nil
}

// tripCache uses redis when configured and reachable; the CLI never fails
// over a missing cache.
func (a *app) tripCache() cache.Cache {
	if !a.cfg.Cache.Enabled {
		return cache.NewNoOpCache()
	}
	c, err := cache.NewRedisCache(cache.RedisConfig{
		Host:     a.cfg.Cache.Host,
		Port:     a.cfg.Cache.Port,
		Password: a.cfg.Cache.Password,
		DB:       a.cfg.Cache.DB,
		TTL:      a.cfg.Cache.TTL,
	})
	if err != nil {
		a.logger.Debug("redis unavailable, searching without cache", "error", err)
		return cache.NewNoOpCache()
	}
	return c
}

func (a *app) bookings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bookings", flag.ContinueOnError)
	status := fs.String("status", "", "only bookings with this status")
	limit := fs.Int("limit", 50, "page size")
	offset := fs.Int("offset", 0, "skip this many bookings")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, err := a.session.Context(ctx)
	if err != nil {
		return err
	}
	user, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}

	loader := history.NewLoader(a.client, history.Config{Timeout: a.cfg.API.HistoryTimeout}, a.logger)
	res, err := loader.Load(ctx, user.ID, api.BookingQuery{
		Status: models.BookingStatus(*status),
		Limit:  *limit,
		Offset: *offset,
	})
	if err != nil {
		return err
	}

	if len(res.Views) == 0 {
		fmt.Fprintln(a.out, "No bookings yet")
		return nil
	}
	for _, v := range res.Views {
		fmt.Fprintln(a.out, ui.RenderBooking(v))
	}
	if res.PaymentsUnavailable {
		fmt.Fprintln(a.out, "Payment details are unavailable right now.")
	}
	fmt.Fprintf(a.out, "%d of %d bookings\n", len(res.Views), res.Total)
	return nil
}

func (a *app) bookingDetail(ctx context.Context, args []string) error {
	v, err := a.loadBooking(ctx, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ui.RenderBooking(*v))
	return nil
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	reason := fs.String("reason", "", "why the booking is cancelled")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := bookingID(fs.Args())
	if err != nil {
		return err
	}

	ctx, err = a.session.Context(ctx)
	if err != nil {
		return err
	}
	res, err := a.client.CancelBooking(ctx, id, *reason)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (booking %d is now %s)\n", res.Message, res.BookingID, res.Status)
	return nil
}

func (a *app) ticket(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ticket", flag.ContinueOnError)
	outPath := fs.StringP("out", "o", "", "output file (default ticket-ID.pdf)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v, err := a.loadBooking(ctx, fs.Args())
	if err != nil {
		return err
	}
	pdf, err := booking.TicketPDF(*v)
	if err != nil {
		return err
	}

	path := *outPath
	if path == "" {
		path = fmt.Sprintf("ticket-%d.pdf", v.Booking.ID)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved", path)
	return nil
}

func (a *app) loadBooking(ctx context.Context, args []string) (*booking.View, error) {
	id, err := bookingID(args)
	if err != nil {
		return nil, err
	}
	ctx, err = a.session.Context(ctx)
	if err != nil {
		return nil, err
	}

	b, err := a.client.Booking(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := a.client.PaymentHistory(ctx)
	if err != nil {
		a.logger.Warn("payment history unavailable", "booking_id", id, "error", err)
	}
	v := booking.NewView(*b, booking.MatchPayment(*b, payments))
	return &v, nil
}

func (a *app) notifications(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ContinueOnError)
	follow := fs.BoolP("follow", "f", false, "stay connected and print notifications as they arrive")
	readID := fs.String("read", "", "mark one notification as read")
	readAll := fs.Bool("read-all", false, "mark every notification as read")
	desktop := fs.Bool("desktop", false, "ring the terminal bell when a notification arrives")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, err := a.session.Context(ctx)
	if err != nil {
		return err
	}
	user, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}

	ncfg := a.cfg.Notify
	ncfg.UserID = user.IDString()
	ncfg.Role = user.Role()
	presenter := ui.TerminalPresenter{Print: func(s string) { fmt.Fprintln(a.out, s) }}
	bus := notify.NewBus()
	opts := []notify.Option{
		notify.WithPresenter(presenter),
		notify.WithBus(bus),
		notify.WithLogger(a.logger),
	}
	if *desktop {
		opts = append(opts, notify.WithDesktopNotifier(ui.BellNotifier{Out: a.out}))
	}
	client := notify.NewClient(ncfg, notify.WebSocketDialer{}, a.client, opts...)

	switch {
	case *readID != "":
		if err := client.MarkRead(ctx, *readID); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Marked", *readID, "as read")
		return nil
	case *readAll:
		if err := client.MarkAllRead(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "All notifications marked as read")
		return nil
	case *follow:
		events, unsubscribe := bus.Subscribe(16)
		defer unsubscribe()
		go func() {
			for ev := range events {
				if ev.Kind == notify.EventState {
					a.logger.Info("notification socket", "state", ev.State)
				}
			}
		}()

		fmt.Fprintln(a.out, "Listening on", client.Endpoint())
		err := client.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	list, err := a.client.UnreadNotifications(ctx, ncfg.CacheSize)
	if err != nil {
		return err
	}
	for _, n := range list.Notifications {
		fmt.Fprintf(a.out, "[%s] %s\n", n.ID, ui.RenderToast(notify.ToastFor(n)))
	}
	fmt.Fprintf(a.out, "%d unread\n", list.Count)
	return nil
}

func bookingID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one booking id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid booking id %q", args[0])
	}
	return id, nil
}
