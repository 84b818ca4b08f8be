package handler_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"logotherapy-booking/internal/auth"
	"logotherapy-booking/internal/booking"
	"logotherapy-booking/internal/content"
	"logotherapy-booking/internal/handler"
	"logotherapy-booking/internal/kv"
	"logotherapy-booking/internal/middleware"
	"logotherapy-booking/internal/rpc"
	"logotherapy-booking/internal/session"
	"logotherapy-booking/internal/store"
)

const secret = "test-secret"

var now = time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)

type env struct {
	h    *handler.Handler
	st   *store.Store
	sess *session.Manager
}

func setup(t *testing.T) *env {
	t.Helper()
	quotes := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"q":"Everything can be taken from a man but one thing","a":"Viktor Frankl"}]`)
	}))
	t.Cleanup(quotes.Close)

	st := store.New(kv.NewMemory(), nil)
	sess := session.NewManager(st)
	if _, err := sess.Init(context.Background()); err != nil {
		t.Fatalf("session init: %v", err)
	}
	svc := auth.NewService(st, sess, auth.BcryptHasher{Cost: bcrypt.MinCost}, nil, nil)
	eng := booking.NewEngine(st, sess,
		booking.WithClock(func() time.Time { return now }),
		booking.WithLocation(time.UTC),
	)
	prov, err := content.NewProvider(kv.NewMemory(), content.WithQuoteURL(quotes.URL))
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	return &env{h: handler.New(svc, eng, prov, sess, secret, nil), st: st, sess: sess}
}

func register(t *testing.T, h *handler.Handler, email string) *rpc.AuthResponse {
	t.Helper()
	resp, err := h.Register(context.Background(), &rpc.RegisterRequest{Name: "Test User", Email: email, Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return resp
}

func code(err error) codes.Code {
	s, _ := status.FromError(err)
	return s.Code()
}

// ----- auth -----

func TestRegister(t *testing.T) {
	e := setup(t)

	resp := register(t, e.h, "Test@Mail.com")
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	if resp.User == nil || resp.User.Email != "test@mail.com" || resp.User.Name != "Test User" {
		t.Fatalf("user = %+v", resp.User)
	}
	claims, err := auth.ParseToken(resp.Token, secret)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if claims.Email != "test@mail.com" {
		t.Errorf("token email = %s", claims.Email)
	}

	me, err := e.h.Me(context.Background(), &rpc.Empty{})
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Email != "test@mail.com" {
		t.Errorf("me = %+v", me)
	}
}

func TestRegisterValidation(t *testing.T) {
	e := setup(t)

	tests := []struct {
		name  string
		req   *rpc.RegisterRequest
		field string
	}{
		{"short name", &rpc.RegisterRequest{Name: "X", Email: "a@b.com", Password: "secret1"}, "name"},
		{"bad email", &rpc.RegisterRequest{Name: "Anna", Email: "a@b", Password: "secret1"}, "email"},
		{"short password", &rpc.RegisterRequest{Name: "Anna", Email: "a@b.com", Password: "12345"}, "password"},
		{"long password", &rpc.RegisterRequest{Name: "Anna", Email: "a@b.com", Password: strings.Repeat("x", 80)}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.h.Register(context.Background(), tt.req)
			if code(err) != codes.InvalidArgument {
				t.Fatalf("expected InvalidArgument, got %v", err)
			}
			if msg := status.Convert(err).Message(); !strings.HasPrefix(msg, tt.field+":") {
				t.Errorf("message %q does not name field %s", msg, tt.field)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	e := setup(t)
	register(t, e.h, "dup@mail.com")

	_, err := e.h.Register(context.Background(), &rpc.RegisterRequest{Name: "Second", Email: "DUP@mail.com", Password: "secret1"})
	if code(err) != codes.AlreadyExists {
		t.Errorf("expected AlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	e := setup(t)
	register(t, e.h, "login@mail.com")
	e.h.Logout(context.Background(), &rpc.Empty{})

	if _, err := e.h.Me(context.Background(), &rpc.Empty{}); code(err) != codes.Unauthenticated {
		t.Fatalf("me after logout: %v", err)
	}

	resp, err := e.h.Login(context.Background(), &rpc.LoginRequest{Email: "login@mail.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.User.Name != "Test User" {
		t.Errorf("resp = %+v", resp)
	}

	for _, req := range []*rpc.LoginRequest{
		{Email: "login@mail.com", Password: "wrong!"},
		{Email: "nobody@mail.com", Password: "secret1"},
		{},
	} {
		_, err := e.h.Login(context.Background(), req)
		if code(err) != codes.Unauthenticated {
			t.Errorf("%+v: expected Unauthenticated, got %v", req, err)
		}
	}
}

// ----- booking -----

func TestBookingFlow(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	if _, err := e.h.Book(ctx, &rpc.BookRequest{Date: "2025-06-10", Time: "09:00", Name: "Anna", Phone: "0501234567"}); code(err) != codes.Unauthenticated {
		t.Fatalf("book without session: %v", err)
	}

	register(t, e.h, "anna@mail.com")
	br, err := e.h.Book(ctx, &rpc.BookRequest{Date: "2025-06-10", Time: "09:00", Name: "Anna", Phone: "050 123 45 67"})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	a := br.Appointment
	if a.ID == "" || a.Phone != "+380501234567" || a.UserEmail != "anna@mail.com" {
		t.Errorf("appointment = %+v", a)
	}
	if !a.CreatedAt.Equal(now) {
		t.Errorf("createdAt = %v", a.CreatedAt)
	}

	slots, err := e.h.ListSlots(ctx, &rpc.ListSlotsRequest{Date: "2025-06-10"})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	free := 0
	for _, s := range slots.Slots {
		if s.Available {
			free++
		} else if s.Time != "09:00" {
			t.Errorf("unexpected taken slot %s", s.Time)
		}
	}
	if free != 7 {
		t.Errorf("expected 7 free slots, got %d", free)
	}

	_, err = e.h.Book(ctx, &rpc.BookRequest{Date: "2025-06-10", Time: "09:00", Name: "Anna", Phone: "0501234567"})
	if code(err) != codes.AlreadyExists {
		t.Errorf("double booking: expected AlreadyExists, got %v", err)
	}

	_, err = e.h.Book(ctx, &rpc.BookRequest{Date: "2025-06-10", Time: "10:00", Name: "Anna", Phone: "123"})
	if code(err) != codes.InvalidArgument || !strings.HasPrefix(status.Convert(err).Message(), "phone:") {
		t.Errorf("bad phone: %v", err)
	}

	if _, err := e.h.ListSlots(ctx, &rpc.ListSlotsRequest{}); code(err) != codes.InvalidArgument {
		t.Errorf("slots without date: %v", err)
	}
}

func TestUpcomingAndHistory(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	register(t, e.h, "anna@mail.com")

	for _, d := range []string{"2025-06-01", "2025-06-20"} {
		if _, err := e.h.Book(ctx, &rpc.BookRequest{Date: d, Time: "10:00", Name: "Anna", Phone: "0501234567"}); err != nil {
			t.Fatalf("book %s: %v", d, err)
		}
	}

	up, err := e.h.Upcoming(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(up.Appointments) != 1 || up.Appointments[0].Date != "2025-06-20" || up.Appointments[0].Status != "upcoming" {
		t.Errorf("upcoming = %+v", up.Appointments)
	}

	hist, err := e.h.History(ctx, &rpc.HistoryRequest{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist.Appointments) != 2 || hist.Appointments[0].Date != "2025-06-20" || hist.Appointments[1].Status != "past" {
		t.Errorf("history = %+v", hist.Appointments)
	}

	past, _ := e.h.History(ctx, &rpc.HistoryRequest{Status: "past"})
	if len(past.Appointments) != 1 {
		t.Errorf("past filter = %d", len(past.Appointments))
	}
	if _, err := e.h.History(ctx, &rpc.HistoryRequest{Status: "bogus"}); code(err) != codes.InvalidArgument {
		t.Errorf("bad status: %v", err)
	}

	e.h.Logout(ctx, &rpc.Empty{})
	if _, err := e.h.Upcoming(ctx, &rpc.Empty{}); code(err) != codes.Unauthenticated {
		t.Errorf("upcoming after logout: %v", err)
	}
}

func TestConcurrentBooking(t *testing.T) {
	e := setup(t)
	register(t, e.h, "anna@mail.com")

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, taken := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.h.Book(context.Background(), &rpc.BookRequest{Date: "2025-06-12", Time: "15:00", Name: "Anna", Phone: "0501234567"})
			mu.Lock()
			defer mu.Unlock()
			switch code(err) {
			case codes.OK:
				wins++
			case codes.AlreadyExists:
				taken++
			default:
				t.Errorf("unexpected: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 || taken != 9 {
		t.Errorf("wins=%d taken=%d", wins, taken)
	}
}

// ----- content -----

func TestContent(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	q, err := e.h.DailyQuote(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Author != "Viktor Frankl" {
		t.Errorf("quote = %+v", q)
	}

	page, err := e.h.Articles(ctx, &rpc.ArticlesRequest{})
	if err != nil {
		t.Fatalf("articles: %v", err)
	}
	if len(page.Items) != content.ArticleLimit || page.Total < int32(len(page.Items)) {
		t.Errorf("page: %d items of %d", len(page.Items), page.Total)
	}
}

// ----- over the wire -----

func dial(t *testing.T, e *env) *rpc.BookingServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	rl := middleware.NewRateLimiter(100, 100)
	t.Cleanup(rl.Close)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		middleware.RateLimit(rl),
		middleware.Auth(secret, e.sess),
	))
	rpc.RegisterBookingServiceServer(srv, e.h)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return rpc.NewBookingServiceClient(conn)
}

func TestOverGRPC(t *testing.T) {
	e := setup(t)
	c := dial(t, e)
	ctx := context.Background()

	reg, err := c.Register(ctx, &rpc.RegisterRequest{Name: "Anna", Email: "anna@mail.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// guarded without a token
	if _, err := c.Book(ctx, &rpc.BookRequest{Date: "2025-06-10", Time: "09:00", Name: "Anna", Phone: "0501234567"}); code(err) != codes.Unauthenticated {
		t.Fatalf("book without token: %v", err)
	}

	authed := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+reg.Token)
	br, err := c.Book(authed, &rpc.BookRequest{Date: "2025-06-10", Time: "09:00", Name: "Anna", Phone: "0501234567"})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if !br.Appointment.CreatedAt.Equal(now) {
		t.Errorf("createdAt over the wire = %v", br.Appointment.CreatedAt)
	}

	slots, err := c.ListSlots(ctx, &rpc.ListSlotsRequest{Date: "2025-06-10"})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots.Slots) != 8 || slots.Slots[0].Available {
		t.Errorf("slots = %+v", slots.Slots)
	}

	if _, err := c.Logout(authed, &rpc.Empty{}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	// token outlives the session but is refused
	if _, err := c.Me(authed, &rpc.Empty{}); code(err) != codes.Unauthenticated {
		t.Errorf("me after logout: %v", err)
	}
	// logout again, with the stale token and with none
	if _, err := c.Logout(authed, &rpc.Empty{}); err != nil {
		t.Errorf("second logout: %v", err)
	}
	if _, err := c.Logout(ctx, &rpc.Empty{}); err != nil {
		t.Errorf("logout without token: %v", err)
	}
}
