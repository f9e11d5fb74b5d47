// Command leadertool inspects a running PlayGrid server from the terminal.
// It prints the current leaderboard and server statistics by calling the
// public HTTP projections.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/playgrid/playgrid/player"
)

func main() {
	cmd := &cli.Command{
		Name:  "leadertool",
		Usage: "inspect a running PlayGrid server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: "http://localhost:8080",
				Usage: "base URL of the PlayGrid server",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 5 * time.Second,
				Usage: "HTTP request timeout",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "top",
				Usage: "print the current leaderboard",
				Action: func(ctx context.Context, c *cli.Command) error {
					return runTop(ctx, c.String("addr"), c.Duration("timeout"), os.Stdout)
				},
			},
			{
				Name:  "stats",
				Usage: "print server statistics",
				Action: func(ctx context.Context, c *cli.Command) error {
					return runStats(ctx, c.String("addr"), c.Duration("timeout"), os.Stdout)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// fetchJSON performs a GET request and decodes the JSON body.
func fetchJSON(ctx context.Context, addr, path string, timeout time.Duration, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+path, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", addr+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s for %s", resp.Status, path)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

func runTop(ctx context.Context, addr string, timeout time.Duration, out io.Writer) error {
	var resp struct {
		Leaderboard []player.Record `json:"leaderboard"`
	}
	if err := fetchJSON(ctx, addr, "/leaderboard", timeout, &resp); err != nil {
		return err
	}

	if len(resp.Leaderboard) == 0 {
		fmt.Fprintln(out, "No players on the leaderboard yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tPLAYER\tSCORE\tWINS\tGAMES\tLEVEL")
	for i, rec := range resp.Leaderboard {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\n",
			i+1, rec.Username, rec.Score, rec.Wins, rec.GamesPlayed, rec.Level)
	}
	return w.Flush()
}

func runStats(ctx context.Context, addr string, timeout time.Duration, out io.Writer) error {
	var stats map[string]any
	if err := fetchJSON(ctx, addr, "/stats", timeout, &stats); err != nil {
		return err
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%v\n", k, stats[k])
	}
	return w.Flush()
}
