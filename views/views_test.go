package views

import (
	"testing"
	"time"

	"github.com/DineTogether/dining_backend/models"
)

func strPtr(s string) *string {
	return &s
}

func testRequest(id string, creatorID uint, maxParticipants int) models.DiningRequest {
	return models.DiningRequest{
		ID:              id,
		RestaurantName:  "The Italian Kitchen",
		Location:        "Downtown",
		DateTime:        time.Now().Add(24 * time.Hour),
		CuisineType:     strPtr("Italian"),
		DietType:        models.DietAny,
		Budget:          models.BudgetModerate,
		MaxParticipants: maxParticipants,
		CreatorID:       creatorID,
		Status:          models.StatusOpen,
	}
}

func TestBuild(t *testing.T) {
	requests := []models.DiningRequest{
		testRequest("req-1", 1, 4),
		testRequest("req-2", 2, 6),
		testRequest("req-3", 3, 2),
	}
	participants := []models.Participant{
		{RequestID: "req-1", UserID: 10},
		{RequestID: "req-1", UserID: 11},
		{RequestID: "req-2", UserID: 10},
	}
	profiles := []models.Profile{
		{UserID: 1, FullName: strPtr("Alice")},
		{UserID: 2, FullName: strPtr("Bob")},
	}

	snap := Build(requests, participants, profiles, 10)

	if len(snap.Requests) != 3 {
		t.Fatalf("len(Requests) = %d, want 3", len(snap.Requests))
	}

	// Participant count equals the number of rows with a matching request ID
	wantCounts := map[string]int{"req-1": 2, "req-2": 1, "req-3": 0}
	for _, v := range snap.Requests {
		if v.ParticipantCount != wantCounts[v.ID] {
			t.Errorf("%s participant count = %d, want %d", v.ID, v.ParticipantCount, wantCounts[v.ID])
		}
		if v.SpotsLeft != v.MaxParticipants-wantCounts[v.ID] {
			t.Errorf("%s spots left = %d, want %d", v.ID, v.SpotsLeft, v.MaxParticipants-wantCounts[v.ID])
		}
	}

	// Joined set holds exactly the IDs the user has rows for
	if !snap.Joined["req-1"] || !snap.Joined["req-2"] {
		t.Errorf("joined set = %v, want req-1 and req-2", snap.Joined)
	}
	if snap.Joined["req-3"] {
		t.Error("req-3 should not be in the joined set")
	}

	// Creator names resolved from profiles, "Anonymous" when absent
	wantNames := map[string]string{"req-1": "Alice", "req-2": "Bob", "req-3": "Anonymous"}
	for _, v := range snap.Requests {
		if v.CreatorName != wantNames[v.ID] {
			t.Errorf("%s creator name = %q, want %q", v.ID, v.CreatorName, wantNames[v.ID])
		}
	}
}

func TestBuildPreservesOrder(t *testing.T) {
	requests := []models.DiningRequest{
		testRequest("req-b", 1, 4),
		testRequest("req-a", 2, 4),
		testRequest("req-c", 3, 4),
	}

	snap := Build(requests, nil, nil, 10)

	for i, want := range []string{"req-b", "req-a", "req-c"} {
		if snap.Requests[i].ID != want {
			t.Errorf("Requests[%d].ID = %s, want %s", i, snap.Requests[i].ID, want)
		}
	}
}

func TestApplyJoinLeaveRoundTrip(t *testing.T) {
	requests := []models.DiningRequest{testRequest("req-1", 1, 4)}
	participants := []models.Participant{
		{RequestID: "req-1", UserID: 20},
	}

	before := Build(requests, participants, nil, 10)

	joined, ok := before.ApplyJoin("req-1", 10)
	if !ok {
		t.Fatal("ApplyJoin refused a valid join")
	}
	v, _ := joined.View("req-1")
	if v.ParticipantCount != 2 || v.SpotsLeft != 2 || !v.Joined {
		t.Errorf("after join: count=%d spots=%d joined=%v, want 2/2/true", v.ParticipantCount, v.SpotsLeft, v.Joined)
	}
	if !joined.Joined["req-1"] {
		t.Error("req-1 missing from joined set after join")
	}

	left, ok := joined.ApplyLeave("req-1", 10)
	if !ok {
		t.Fatal("ApplyLeave refused a valid leave")
	}
	v, _ = left.View("req-1")
	bv, _ := before.View("req-1")
	if v.ParticipantCount != bv.ParticipantCount || v.SpotsLeft != bv.SpotsLeft || v.Joined != bv.Joined {
		t.Errorf("join then leave did not restore the pre-join view: got %d/%d/%v, want %d/%d/%v",
			v.ParticipantCount, v.SpotsLeft, v.Joined, bv.ParticipantCount, bv.SpotsLeft, bv.Joined)
	}
	if left.Joined["req-1"] {
		t.Error("req-1 still in joined set after leave")
	}
}

func TestApplyJoinRefusals(t *testing.T) {
	tests := []struct {
		name         string
		participants []models.Participant
		requestID    string
		userID       uint
	}{
		{
			name:      "unknown request",
			requestID: "req-missing",
			userID:    10,
		},
		{
			name: "already joined",
			participants: []models.Participant{
				{RequestID: "req-1", UserID: 10},
			},
			requestID: "req-1",
			userID:    10,
		},
		{
			name:      "creator joining own request",
			requestID: "req-1",
			userID:    1,
		},
		{
			name: "request full",
			participants: []models.Participant{
				{RequestID: "req-1", UserID: 20},
				{RequestID: "req-1", UserID: 21},
			},
			requestID: "req-1",
			userID:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := []models.DiningRequest{testRequest("req-1", 1, 2)}
			snap := Build(requests, tt.participants, nil, tt.userID)

			next, ok := snap.ApplyJoin(tt.requestID, tt.userID)
			if ok {
				t.Fatal("ApplyJoin accepted, want refusal")
			}

			// Refusal leaves the snapshot untouched
			v, found := next.View("req-1")
			orig, _ := snap.View("req-1")
			if found && (v.ParticipantCount != orig.ParticipantCount || v.Joined != orig.Joined) {
				t.Errorf("refused join mutated the snapshot: %+v != %+v", v, orig)
			}
		})
	}
}

func TestApplyLeaveWithoutJoin(t *testing.T) {
	requests := []models.DiningRequest{testRequest("req-1", 1, 4)}

	snap := Build(requests, nil, nil, 10)

	next, ok := snap.ApplyLeave("req-1", 10)
	if ok {
		t.Fatal("ApplyLeave accepted a leave without a prior join")
	}

	v, _ := next.View("req-1")
	if v.ParticipantCount < 0 {
		t.Errorf("participant count went negative: %d", v.ParticipantCount)
	}
	if v.ParticipantCount != 0 {
		t.Errorf("participant count = %d, want 0", v.ParticipantCount)
	}
}

func TestSpotsLeftScenario(t *testing.T) {
	// max_participants=4 with 3 existing participants: one spot left, a
	// fourth user can join, after which the request is full for everyone
	requests := []models.DiningRequest{testRequest("req-1", 1, 4)}
	participants := []models.Participant{
		{RequestID: "req-1", UserID: 20},
		{RequestID: "req-1", UserID: 21},
		{RequestID: "req-1", UserID: 22},
	}

	snap := Build(requests, participants, nil, 10)
	v, _ := snap.View("req-1")
	if v.SpotsLeft != 1 {
		t.Fatalf("spots left = %d, want 1", v.SpotsLeft)
	}

	next, ok := snap.ApplyJoin("req-1", 10)
	if !ok {
		t.Fatal("join with one spot left refused")
	}
	v, _ = next.View("req-1")
	if v.SpotsLeft != 0 {
		t.Fatalf("spots left after join = %d, want 0", v.SpotsLeft)
	}

	// A refetch by another would-be joiner sees the request as full
	refetched := Build(requests, append(participants, models.Participant{RequestID: "req-1", UserID: 10}), nil, 30)
	if _, ok := refetched.ApplyJoin("req-1", 30); ok {
		t.Error("join on a full request accepted")
	}
}

func TestSplit(t *testing.T) {
	requests := []models.DiningRequest{
		testRequest("req-1", 10, 4),
		testRequest("req-2", 2, 4),
		testRequest("req-3", 10, 4),
	}

	snap := Build(requests, nil, nil, 10)
	mine, others := snap.Split(10)

	if len(mine) != 2 || mine[0].ID != "req-1" || mine[1].ID != "req-3" {
		t.Errorf("mine = %v, want [req-1 req-3]", ids(mine))
	}
	if len(others) != 1 || others[0].ID != "req-2" {
		t.Errorf("others = %v, want [req-2]", ids(others))
	}
}

func ids(list []RequestView) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, v.ID)
	}
	return out
}
