package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	recentLimit int
	resultSets  []string
)

func init() {
	recentCmd.Flags().IntVar(&recentLimit, "limit", 0, "Number of results to list (server default when 0)")
	recordCmd.Flags().StringArrayVar(&resultSets, "set", nil, "Set score as teamA-teamB, repeat three times (e.g. --set 6-2 --set 4-6 --set 7-5)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(recordCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var rankingCmd = &cobra.Command{
	Use:   "ranking <league>",
	Short: "Show the standings of a league",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/leagues/"+url.PathEscape(args[0])+"/ranking", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <league> [player]",
	Short: "Show the statistics of a player, yourself by default",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/leagues/" + url.PathEscape(args[0]) + "/statistics"
		if len(args) == 2 {
			endpoint += "/" + url.PathEscape(args[1])
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent <league>",
	Short: "List the latest recorded results of a league",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/leagues/" + url.PathEscape(args[0]) + "/recent-results"
		if recentLimit > 0 {
			endpoint += "?limit=" + strconv.Itoa(recentLimit)
		}
		return performRequest(http.MethodGet, endpoint, nil)
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List your finished league matches that still need a result",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches/pending-results", nil)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <match>",
	Short: "Record the result of a finished league match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := buildResultBody(resultSets)
		if err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/matches/"+url.PathEscape(args[0])+"/results", body)
	},
}

type setBody struct {
	PointsTeamA int `json:"pointsTeamA"`
	PointsTeamB int `json:"pointsTeamB"`
}

// buildResultBody turns "6-2" style flags into the request body. Score
// rules are left to the server.
func buildResultBody(sets []string) ([]byte, error) {
	payload := struct {
		Sets []setBody `json:"sets"`
	}{}
	for _, s := range sets {
		a, b, ok := strings.Cut(s, "-")
		if !ok {
			return nil, fmt.Errorf("invalid set %q, expected teamA-teamB", s)
		}
		pointsA, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("invalid set %q: %w", s, err)
		}
		pointsB, err := strconv.Atoi(strings.TrimSpace(b))
		if err != nil {
			return nil, fmt.Errorf("invalid set %q: %w", s, err)
		}
		payload.Sets = append(payload.Sets, setBody{PointsTeamA: pointsA, PointsTeamB: pointsB})
	}
	return json.Marshal(payload)
}

func performRequest(method, endpoint string, body []byte) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
