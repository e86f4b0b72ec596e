package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-league/internal/auth"
	"github.com/mauv0809/padel-league/internal/club"
	"github.com/mauv0809/padel-league/internal/league"
	"github.com/mauv0809/padel-league/internal/pubsub"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// RecordResultHandler only rejects bodies that are not JSON. Set shape and
// values are checked by the recorder after the match preconditions.
func (s *Server) RecordResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		userID, _ := auth.UserID(r.Context())
		matchID := chi.URLParam(r, "id")

		var req recordResultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Debug("Failed to decode result body", "error", err)
			writeError(w, r, badRequest("body must be a JSON object"))
			return
		}
		sets := league.DecodeSets(req.Sets)
		logger.Debug("Recording match result", "matchID", matchID, "userID", userID, "sets", len(sets))

		result, err := s.Recorder.RecordResult(r.Context(), matchID, userID, sets)
		if err != nil {
			writeError(w, r, err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), publishTimeout)
		defer cancel()
		s.publishResult(ctx, result, userID)
		writeData(w, http.StatusCreated, result)
	}
}

// publishResult announces a committed result. The result stays recorded
// when publishing fails.
func (s *Server) publishResult(ctx context.Context, result *league.MatchResult, userID string) {
	event := pubsub.ResultRecorded{
		MatchID:     result.MatchID,
		ResultID:    result.ID,
		LeagueCode:  result.LeagueCode,
		WinningTeam: string(result.Winner),
		RecordedBy:  userID,
		RecordedAt:  result.CreatedAt.Unix(),
	}
	for _, set := range result.Sets {
		event.Sets = append(event.Sets, set.String())
	}
	for _, change := range result.RatingChanges {
		event.RatingChanges = append(event.RatingChanges, pubsub.RatingChange{
			PlayerID:       change.PlayerID,
			PreviousRating: change.PreviousRating,
			NewRating:      change.NewRating,
		})
	}
	if err := s.pubsub.SendMessage(ctx, pubsub.EventResultRecorded, event); err != nil {
		s.Metrics.IncEventsFailed()
		log.FromContext(ctx).Warn("Failed to publish result event", "matchID", result.MatchID, "error", err)
		return
	}
	s.Metrics.IncEventsPublished()
}

func (s *Server) PendingResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserID(r.Context())
		matches, err := s.Queries.PendingResults(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, matches)
	}
}

func (s *Server) RankingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserID(r.Context())
		ranking, err := s.Queries.Ranking(r.Context(), chi.URLParam(r, "code"), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, ranking)
	}
}

// PlayerStatisticsHandler serves the statistics of the player in the path,
// or of the caller when no player is given.
func (s *Server) PlayerStatisticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerId")
		if playerID == "" {
			playerID, _ = auth.UserID(r.Context())
		}
		report, err := s.Queries.PlayerStatistics(r.Context(), chi.URLParam(r, "code"), playerID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, report)
	}
}

func (s *Server) RecentResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				writeError(w, r, badRequest("limit must be a positive integer"))
				return
			}
			limit = parsed
		}
		results, err := s.Queries.RecentResults(r.Context(), chi.URLParam(r, "code"), limit)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, results)
	}
}

func (s *Server) GetProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserID(r.Context())
		profile, err := s.Store.GetProfile(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, profile)
	}
}

func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserID(r.Context())
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.FromContext(r.Context()).Error("Failed to read request body", "error", err)
			writeError(w, r, badRequest("failed to read request body"))
			return
		}
		upd, err := club.ParseProfileUpdate(bodyBytes)
		if err != nil {
			writeError(w, r, err)
			return
		}
		profile, err := s.Store.UpdateProfile(r.Context(), userID, upd)
		if err != nil {
			writeError(w, r, err)
			return
		}
		log.FromContext(r.Context()).Info("Profile updated", "userID", userID)
		writeData(w, http.StatusOK, profile)
	}
}
