// Package views turns raw store rows into view-ready aggregates and keeps
// the derivation logic independent of HTTP handlers so it can be tested on
// its own.
package views

import (
	"github.com/DineTogether/dining_backend/models"
)

// RequestView is a dining request decorated with its creator's display name
// and a live participant count. Recomputed on every fetch and patched by the
// reducers after each successful mutation; never persisted.
type RequestView struct {
	models.DiningRequest
	CreatorName      string `json:"creator_name"`
	ParticipantCount int    `json:"participant_count"`
	SpotsLeft        int    `json:"spots_left"`
	Joined           bool   `json:"joined"`
}

// Snapshot is the derived application state for one user: the decorated
// requests in store order plus the set of request IDs the user has joined.
type Snapshot struct {
	Requests []RequestView   `json:"requests"`
	Joined   map[string]bool `json:"joined"`
}

// CountByRequest counts participant rows per request ID
func CountByRequest(participants []models.Participant) map[string]int {
	counts := make(map[string]int, len(participants))
	for _, p := range participants {
		counts[p.RequestID]++
	}
	return counts
}

// JoinedSet returns the request IDs the given user has a participant row for
func JoinedSet(participants []models.Participant, userID uint) map[string]bool {
	joined := make(map[string]bool)
	for _, p := range participants {
		if p.UserID == userID {
			joined[p.RequestID] = true
		}
	}
	return joined
}

// Build joins requests with their creators' profiles and participant counts.
// Profiles are matched by creator_id with "Anonymous" as the fallback name;
// the participant count of a request is the number of rows carrying its ID.
func Build(requests []models.DiningRequest, participants []models.Participant, profiles []models.Profile, userID uint) Snapshot {
	profilesByID := make(map[uint]models.Profile, len(profiles))
	for _, p := range profiles {
		profilesByID[p.UserID] = p
	}

	counts := CountByRequest(participants)
	joined := JoinedSet(participants, userID)

	views := make([]RequestView, 0, len(requests))
	for _, r := range requests {
		count := counts[r.ID]
		views = append(views, RequestView{
			DiningRequest:    r,
			CreatorName:      profilesByID[r.CreatorID].DisplayName(),
			ParticipantCount: count,
			SpotsLeft:        r.MaxParticipants - count,
			Joined:           joined[r.ID],
		})
	}

	return Snapshot{Requests: views, Joined: joined}
}

// Split partitions the snapshot into the user's own requests and everyone
// else's, preserving order
func (s Snapshot) Split(userID uint) (mine, others []RequestView) {
	mine = []RequestView{}
	others = []RequestView{}
	for _, v := range s.Requests {
		if v.CreatorID == userID {
			mine = append(mine, v)
		} else {
			others = append(others, v)
		}
	}
	return mine, others
}

// View returns the decorated request with the given ID
func (s Snapshot) View(requestID string) (RequestView, bool) {
	for _, v := range s.Requests {
		if v.ID == requestID {
			return v, true
		}
	}
	return RequestView{}, false
}

// ApplyJoin returns a copy of the snapshot with the user added to the given
// request: count incremented, spots decremented, ID added to the joined set.
// It refuses when the request is unknown, already joined, created by the user
// or full, leaving the input untouched.
func (s Snapshot) ApplyJoin(requestID string, userID uint) (Snapshot, bool) {
	v, ok := s.View(requestID)
	if !ok || v.Joined || v.CreatorID == userID || v.SpotsLeft <= 0 {
		return s, false
	}

	next := s.clone()
	for i := range next.Requests {
		if next.Requests[i].ID == requestID {
			next.Requests[i].ParticipantCount++
			next.Requests[i].SpotsLeft--
			next.Requests[i].Joined = true
		}
	}
	next.Joined[requestID] = true
	return next, true
}

// ApplyLeave returns a copy of the snapshot with the user removed from the
// given request. It refuses when the request is unknown or not joined, so a
// leave without a prior join can never drive a count negative.
func (s Snapshot) ApplyLeave(requestID string, userID uint) (Snapshot, bool) {
	v, ok := s.View(requestID)
	if !ok || !v.Joined {
		return s, false
	}

	next := s.clone()
	for i := range next.Requests {
		if next.Requests[i].ID == requestID {
			if next.Requests[i].ParticipantCount > 0 {
				next.Requests[i].ParticipantCount--
				next.Requests[i].SpotsLeft++
			}
			next.Requests[i].Joined = false
		}
	}
	delete(next.Joined, requestID)
	return next, true
}

func (s Snapshot) clone() Snapshot {
	requests := make([]RequestView, len(s.Requests))
	copy(requests, s.Requests)
	joined := make(map[string]bool, len(s.Joined))
	for id := range s.Joined {
		joined[id] = true
	}
	return Snapshot{Requests: requests, Joined: joined}
}
