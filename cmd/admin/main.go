package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/restaurant-pos/admin/internal/api"
	"github.com/restaurant-pos/admin/internal/config"
	"github.com/restaurant-pos/admin/internal/notify"
	"github.com/restaurant-pos/admin/internal/pos"
	"github.com/restaurant-pos/admin/internal/screen"
	"github.com/restaurant-pos/admin/internal/session"
	"github.com/restaurant-pos/admin/internal/storage"
)

const usage = `Usage: admin [-config FILE] COMMAND

Commands:
  login      -email X -password Y [-remember]
  logout
  me
  dashboard
  orders     [-status S] [-search Q]
  pos        -table CODE [-open | -add PRODUCT -qty N [-notes S] | -confirm | -pay | -cancel | -watch]
  products   [-search Q]
  inventory  [-filter out|low|in] [-in PRODUCT -qty N] [-out PRODUCT -qty N]
  tables     [-search Q]
  users      [-status S] [-role R] [-search Q]
  reports    [-from YYYY-MM-DD] [-to YYYY-MM-DD]
`

// app bundles everything a subcommand needs.
type app struct {
	cfg     *config.Config
	sess    *session.Manager
	client  *api.Client
	toasts  *notify.Center
	baseCtx context.Context
}

func main() {
	log.SetFlags(0)

	configPath := flag.String("config", "", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	persistent, err := storage.NewFileStore(cfg.StateDir)
	if err != nil {
		log.Fatalf("ERROR: open state dir: %v", err)
	}
	sess := session.NewManager(persistent, storage.NewMemStore())

	toasts := notify.NewCenter()
	toasts.Subscribe(func(msg notify.Message) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", msg.Level, msg.Text)
	})

	navigate := func(route string) {
		if route == api.LoginRoute {
			fmt.Fprintln(os.Stderr, "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại")
		}
	}
	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, sess, navigate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: cfg, sess: sess, client: client, toasts: toasts, baseCtx: ctx}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	if err := a.run(cmd, args); err != nil {
		os.Exit(1)
	}
}

func (a *app) run(cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(args)
	case "logout":
		screen.NewLoginScreen(a.client, a.sess, a.toasts, nil).Logout()
		fmt.Println("Đã đăng xuất")
		return nil
	case "me":
		return a.cmdMe(args)
	case "dashboard":
		return a.cmdDashboard(args)
	case "orders":
		return a.cmdOrders(args)
	case "pos":
		return a.cmdPOS(args)
	case "products":
		return a.cmdProducts(args)
	case "inventory":
		return a.cmdInventory(args)
	case "tables":
		return a.cmdTables(args)
	case "users":
		return a.cmdUsers(args)
	case "reports":
		return a.cmdReports(args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	remember := fs.Bool("remember", false, "keep the session across restarts")
	fs.Parse(args)

	login := screen.NewLoginScreen(a.client, a.sess, a.toasts, func(route string) {
		if route == screen.DashboardRoute {
			fmt.Println("Đăng nhập thành công")
		}
	})
	return login.Submit(a.baseCtx, *email, *password, *remember)
}

func (a *app) cmdMe(args []string) error {
	s := screen.NewProfileScreen(a.client, a.toasts)
	if err := s.Load(a.baseCtx); err != nil {
		return err
	}
	me := s.Me()
	fmt.Printf("%s <%s>\nRole: %s  Status: %s\n", me.FullName, me.Email, me.RoleCode, me.Status)
	return nil
}

func (a *app) cmdDashboard(args []string) error {
	s := screen.NewDashboardScreen(a.client, a.toasts)
	if err := s.Load(a.baseCtx, time.Now()); err != nil {
		return err
	}
	stats := s.Stats()
	fmt.Printf("Doanh thu hôm nay: %s\n", stats.Revenue.StringFixed(0))
	fmt.Printf("Đơn hàng: %d (đang phục vụ: %d)\n", stats.OrderCount, stats.OpenOrders)
	fmt.Printf("Bàn: %d/%d đang có khách\n", stats.OccupiedTables, stats.TotalTables)

	fmt.Println("\nMón bán chạy:")
	for _, tp := range s.TopProducts(5) {
		fmt.Printf("  %-24s %d\n", tp.Name, tp.Quantity)
	}
	return nil
}

func (a *app) cmdOrders(args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	status := fs.String("status", "", "filter by status")
	search := fs.String("search", "", "search by order id or table")
	fs.Parse(args)

	s := screen.NewOrdersScreen(a.client, a.toasts)
	if err := s.Load(a.baseCtx, time.Time{}, time.Time{}); err != nil {
		return err
	}
	s.StatusFilter = strings.ToUpper(*status)
	s.Search = *search

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MÃ\tBÀN\tTRẠNG THÁI\tTỔNG TIỀN\tTHỜI GIAN")
	for _, o := range s.Filtered() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			screen.DisplayID(o), s.TableLabel(o), o.Status,
			o.TotalAmount.StringFixed(0), o.CreatedAt.Format("15:04 02/01"))
	}
	return w.Flush()
}

func (a *app) cmdPOS(args []string) error {
	fs := flag.NewFlagSet("pos", flag.ExitOnError)
	tableCode := fs.String("table", "", "table code")
	open := fs.Bool("open", false, "open the table")
	add := fs.String("add", "", "product id to add")
	qty := fs.String("qty", "", "quantity (blank means 1)")
	notes := fs.String("notes", "", "item notes")
	confirm := fs.Bool("confirm", false, "confirm the order")
	pay := fs.Bool("pay", false, "pay the order")
	cancel := fs.Bool("cancel", false, "cancel the order")
	watch := fs.Bool("watch", false, "keep watching the table for changes")
	fs.Parse(args)

	if *tableCode == "" {
		return fmt.Errorf("pos: -table is required")
	}

	tableID, err := a.resolveTable(*tableCode)
	if err != nil {
		return err
	}

	pollInterval := a.cfg.PollInterval
	if !*watch {
		pollInterval = 0
	}
	wf := pos.New(a.client, a.toasts, pollInterval)
	wf.Confirm = promptYesNo
	defer wf.Close()

	wf.SelectTable(a.baseCtx, tableID)

	switch {
	case *open:
		err = wf.OpenTable(a.baseCtx)
	case *add != "":
		err = wf.AddItem(a.baseCtx, *add, *qty, *notes)
	case *confirm:
		err = wf.ConfirmOrder(a.baseCtx)
	case *pay:
		err = wf.Pay(a.baseCtx)
	case *cancel:
		err = wf.CancelOrder(a.baseCtx)
	}
	if err != nil {
		return err
	}

	printOrder(wf.Order())

	if *watch {
		feed := pos.NewLiveFeed(wsURL(a.cfg.APIBaseURL), a.sess.Token, wf)
		go feed.Run(a.baseCtx)
		<-a.baseCtx.Done()
	}
	return nil
}

// resolveTable maps a table code like B01 to its id.
func (a *app) resolveTable(code string) (string, error) {
	tables, _, err := a.client.Tables(a.baseCtx, 0, a.cfg.MaxPageSize)
	if err != nil {
		return "", err
	}
	for _, t := range tables {
		if strings.EqualFold(t.Code, code) || strings.EqualFold(t.Label(), code) {
			return t.ID.String(), nil
		}
	}
	return "", fmt.Errorf("table %q not found", code)
}

func printOrder(o *api.Order) {
	if o == nil {
		fmt.Println("Bàn trống")
		return
	}
	fmt.Printf("Đơn %s  [%s]\n", o.ID, o.Status)
	for _, it := range o.Items {
		marker := " "
		if it.Status == "CANCELLED" {
			marker = "x"
		}
		fmt.Printf(" %s %-24s x%d  %s\n", marker, it.ProductName, it.Quantity, it.UnitPrice.StringFixed(0))
	}
	fmt.Printf("Tổng: %s (%d món)\n", o.TotalAmount.StringFixed(0), o.TotalQuantity)
}

func (a *app) cmdProducts(args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "search by name")
	fs.Parse(args)

	s := screen.NewProductsScreen(a.client, a.toasts)
	if err := s.Load(a.baseCtx); err != nil {
		return err
	}
	s.Search = *search

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TÊN\tDANH MỤC\tGIÁ")
	for _, p := range s.Filtered() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, s.CategoryName(p.CategoryID), p.Price.StringFixed(0))
	}
	return w.Flush()
}

func (a *app) cmdInventory(args []string) error {
	fs := flag.NewFlagSet("inventory", flag.ExitOnError)
	filter := fs.String("filter", "", "out, low or in")
	stockIn := fs.String("in", "", "product id to stock in")
	stockOut := fs.String("out", "", "product id to stock out")
	qty := fs.Int("qty", 0, "quantity")
	fs.Parse(args)

	s := screen.NewInventoryScreen(a.client, a.toasts, a.cfg.LowStockThreshold)
	if err := s.Load(a.baseCtx); err != nil {
		return err
	}

	switch {
	case *stockIn != "":
		return s.StockIn(a.baseCtx, *stockIn, *qty)
	case *stockOut != "":
		return s.StockOut(a.baseCtx, *stockOut, *qty)
	}

	s.BucketFilter = *filter
	counts := s.Counts()
	fmt.Printf("Hết kho: %d  Sắp hết: %d  Còn hàng: %d\n\n", counts["out"], counts["low"], counts["in"])

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SẢN PHẨM\tKHẢ DỤNG\tTỔNG\tTÌNH TRẠNG")
	for _, row := range s.Filtered() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
			row.ProductName, row.Record.AvailableQuantity, row.Record.TotalQuantity, row.Bucket)
	}
	return w.Flush()
}

func (a *app) cmdTables(args []string) error {
	fs := flag.NewFlagSet("tables", flag.ExitOnError)
	search := fs.String("search", "", "search by code")
	fs.Parse(args)

	s := screen.NewTablesScreen(a.client, a.toasts)
	if err := s.Load(a.baseCtx); err != nil {
		return err
	}
	s.Search = *search

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BÀN\tSỨC CHỨA\tTRẠNG THÁI")
	for _, t := range s.Filtered() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", t.Label(), t.Capacity, t.Status)
	}
	return w.Flush()
}

func (a *app) cmdUsers(args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	status := fs.String("status", "", "filter by status")
	role := fs.String("role", "", "filter by role")
	search := fs.String("search", "", "search by name, email or phone")
	fs.Parse(args)

	s := screen.NewUsersScreen(a.client, a.toasts)
	if err := s.Load(a.baseCtx); err != nil {
		return err
	}
	s.StatusFilter = strings.ToUpper(*status)
	s.RoleFilter = strings.ToUpper(*role)
	s.Search = *search

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HỌ TÊN\tEMAIL\tVAI TRÒ\tTRẠNG THÁI")
	for _, u := range s.Filtered() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.FullName, u.Email, u.RoleCode, u.Status)
	}
	return w.Flush()
}

func (a *app) cmdReports(args []string) error {
	fs := flag.NewFlagSet("reports", flag.ExitOnError)
	fromStr := fs.String("from", "", "start date YYYY-MM-DD")
	toStr := fs.String("to", "", "end date YYYY-MM-DD")
	fs.Parse(args)

	now := time.Now()
	from := now.AddDate(0, 0, -7)
	to := now
	if *fromStr != "" {
		if d, err := time.Parse("2006-01-02", *fromStr); err == nil {
			from = d
		}
	}
	if *toStr != "" {
		if d, err := time.Parse("2006-01-02", *toStr); err == nil {
			to = d
		}
	}

	s := screen.NewReportsScreen(a.client, a.toasts)
	if err := s.Load(a.baseCtx, from, to); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NGÀY\tĐƠN\tDOANH THU")
	for _, d := range s.Daily() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", d.Date.Format("02/01/2006"), d.Orders, d.Revenue.StringFixed(0))
	}
	w.Flush()
	fmt.Printf("\nTổng doanh thu: %s\n", s.TotalRevenue().StringFixed(0))
	return nil
}

func promptYesNo(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// wsURL turns the REST base URL into the order feed endpoint.
func wsURL(baseURL string) string {
	url := strings.TrimSuffix(baseURL, "/")
	url = strings.Replace(url, "https://", "wss://", 1)
	url = strings.Replace(url, "http://", "ws://", 1)
	return url + "/ws/orders"
}
