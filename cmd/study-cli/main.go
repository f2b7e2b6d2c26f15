// study-cli is a terminal client for the study-point API: it drives the
// timer state machine locally and posts completed sessions to the
// server, the same flow the web client follows.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Prakharchiku/study-point-1/timer"
)

type client struct {
	base string
	http *http.Client
	user struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
}

func newClient(base string) *client {
	jar, _ := cookiejar.New(nil)
	return &client{base: strings.TrimRight(base, "/"), http: &http.Client{Jar: jar, Timeout: 15 * time.Second}}
}

func (c *client) post(path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	resp, err := c.http.Post(c.base+path, "application/json", &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s: %s", resp.Status, e.Message)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *client) get(path string, out any) error {
	resp, err := c.http.Get(c.base + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type creds struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type breakOption struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Cost     int    `json:"cost"`
}

type stats struct {
	Currency       int `json:"currency"`
	TotalStudyTime int `json:"totalStudyTime"`
	TotalSessions  int `json:"totalSessions"`
	StreakDays     int `json:"streakDays"`
	Level          int `json:"level"`
	Experience     int `json:"experience"`
}

func main() {
	server := flag.String("server", "http://localhost:8080", "API base URL")
	register := flag.Bool("register", false, "register instead of logging in")
	username := flag.String("user", "", "username")
	password := flag.String("pass", "", "password")
	earnRate := flag.Int("earn-rate", 10, "coins per minute (display only; server recomputes)")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("usage: study-cli -user NAME -pass SECRET [-register]")
	}

	c := newClient(*server)
	path := "/api/login"
	if *register {
		path = "/api/register"
	}
	if err := c.post(path, creds{Username: *username, Password: *password}, &c.user); err != nil {
		log.Fatalf("auth failed: %v", err)
	}
	fmt.Printf("signed in as %s (id %d)\n", c.user.Username, c.user.ID)

	t := timer.New(*earnRate, nil)
	breakUntil := time.Time{}
	resumeAfterBreak := false

	fmt.Println("commands: start | pause | stop | stats | breaks | buy <id> | end | quit")
	sc := bufio.NewScanner(os.Stdin)
	for {
		// finish an elapsed break before reading the next command
		if !breakUntil.IsZero() && time.Now().After(breakUntil) {
			breakUntil = time.Time{}
			_ = c.post("/api/breaks/end", nil, nil)
			fmt.Println("break over")
			if resumeAfterBreak {
				t.Start()
				resumeAfterBreak = false
			}
		}

		if award, crossed := t.Tick(); crossed {
			fmt.Printf("+%d coins (%d so far this session)\n", award, t.CoinsSoFar())
		}

		fmt.Printf("[%s %s] > ", t.State(), fmtDur(t.Elapsed()))
		if !sc.Scan() {
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "start":
			t.Start()
			// streak counts the day you started studying; a failure
			// here must not stop the timer
			if err := c.post("/api/update-streak", nil, nil); err != nil {
				fmt.Println("streak update failed:", err)
			}
		case "pause":
			t.Pause()
		case "stop":
			res, ok := t.Stop()
			if !ok {
				fmt.Println("nothing to stop")
				continue
			}
			body := map[string]any{"userId": c.user.ID, "duration": res.Duration, "coinsEarned": res.CoinsEarned}
			if err := c.post("/api/sessions", body, nil); err != nil {
				// local state already reset; the session is lost but
				// the timer never re-enters running
				fmt.Println("session save failed:", err)
				continue
			}
			fmt.Printf("saved %ds, +%d coins\n", res.Duration, res.CoinsEarned)
		case "stats":
			var s stats
			if err := c.get(fmt.Sprintf("/api/stats/%d", c.user.ID), &s); err != nil {
				fmt.Println("stats failed:", err)
				continue
			}
			fmt.Printf("coins %d | lvl %d (%d xp) | streak %dd | %d sessions, %s total\n",
				s.Currency, s.Level, s.Experience, s.StreakDays, s.TotalSessions,
				fmtDur(time.Duration(s.TotalStudyTime)*time.Second))
		case "breaks":
			var opts []breakOption
			if err := c.get("/api/breaks", &opts); err != nil {
				fmt.Println("breaks failed:", err)
				continue
			}
			for _, b := range opts {
				fmt.Printf("  %d: %s (%dm, %d coins)\n", b.ID, b.Name, b.Duration, b.Cost)
			}
		case "buy":
			if len(fields) < 2 {
				fmt.Println("buy <id>")
				continue
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("buy <id>")
				continue
			}
			var out struct {
				Break breakOption `json:"break"`
				Stats stats       `json:"stats"`
			}
			if err := c.post(fmt.Sprintf("/api/breaks/%d/purchase", id), nil, &out); err != nil {
				fmt.Println("purchase failed:", err)
				continue
			}
			if t.State() == timer.StateRunning {
				t.Pause()
				resumeAfterBreak = true
			}
			breakUntil = time.Now().Add(time.Duration(out.Break.Duration) * time.Minute)
			fmt.Printf("%s started, %d coins left\n", out.Break.Name, out.Stats.Currency)
		case "end":
			if breakUntil.IsZero() {
				fmt.Println("no break running")
				continue
			}
			breakUntil = time.Time{}
			_ = c.post("/api/breaks/end", nil, nil)
			if resumeAfterBreak {
				t.Start()
				resumeAfterBreak = false
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("commands: start | pause | stop | stats | breaks | buy <id> | end | quit")
		}
	}
}

func fmtDur(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}
