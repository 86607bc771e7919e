package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cleaning-cost/core/determinism"
	"cleaning-cost/core/output"
	"cleaning-cost/core/rooms"
	"cleaning-cost/core/types"
	"cleaning-cost/internal/errors"
)

var quoteIDs = determinism.NewIDGenerator("quote")

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// decode reads a JSON body. Enumeration errors raised while decoding keep
// their type; everything else is a parsing error.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.TypeOf(err) != "" {
			return err
		}
		return errors.Parsing("invalid JSON body", err)
	}
	return nil
}

// handleEstimate handles POST /v1/estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req EstimateRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	profile, err := req.Profile.Profile()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list := req.Rooms
	if list == nil {
		list = rooms.Regenerate(profile.Counts())
	}
	for i, room := range list {
		if !room.FloorType.IsValid() {
			s.writeError(w, r, errors.InvalidEnum(fmt.Sprintf("floor type of room %d", i), string(room.FloorType), []string{
				string(types.FloorCarpet), string(types.FloorHardwoodOrTile),
			}))
			return
		}
	}

	quote := s.engine.Quote(profile, list)

	hash, err := determinism.HashJSON(EstimateRequest{Profile: req.Profile, Rooms: list})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, EstimateResponse{
		RequestID: requestIDFrom(r.Context()),
		QuoteID:   string(quoteIDs.Generate(hash.Hex(), quote.Table)),
		Prices:    quote.Prices,
		Quote:     quote,
		Rooms:     list,
		Metadata: &ResponseMetadata{
			InputHash:     hash.Hex(),
			EngineVersion: s.version,
			RateTable:     quote.Table,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

// handleRooms handles POST /v1/rooms
func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	var req RoomsRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Counts.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	var list []types.Room
	if s.preserveFloors && len(req.Previous) > 0 {
		list = rooms.Reconcile(req.Previous, req.Counts)
	} else {
		list = rooms.Regenerate(req.Counts)
	}
	s.writeJSON(w, RoomsResponse{Rooms: list}, http.StatusOK)
}

// handleFloor handles POST /v1/rooms/floor
func (s *Server) handleFloor(w http.ResponseWriter, r *http.Request) {
	var req FloorRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	index := -1
	switch {
	case req.Index != nil:
		index = *req.Index
	case req.Label != "":
		i, ok := rooms.IndexOf(req.Rooms, req.Label)
		if !ok {
			s.writeError(w, r, errors.Input(fmt.Sprintf("no room labelled %q", req.Label)))
			return
		}
		index = i
	default:
		s.writeError(w, r, errors.Input("index or label is required"))
		return
	}

	list, err := rooms.SetFloor(req.Rooms, index, req.FloorType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, RoomsResponse{Rooms: list}, http.StatusOK)
}

// handleRates handles GET /v1/rates
func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	table := s.engine.Table()
	s.writeJSON(w, output.RateSheet{
		Table:    table.Name(),
		Currency: s.engine.Currency(),
		Rows:     table.Rows(),
	}, http.StatusOK)
}
