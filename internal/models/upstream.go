package models

import (
	"time"

	json "github.com/goccy/go-json"
)

// OpaqueString accepts a JSON string, number, or null and keeps it as an
// uninterpreted string. Upstream is loose about the types of id,
// multiplier, payout and status.
type OpaqueString string

func (o *OpaqueString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*o = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OpaqueString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*o = OpaqueString(n.String())
	return nil
}

// UpstreamDice is one side's dice pair as reported by the source.
// Missing fields decode as zero, never as an error.
type UpstreamDice struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

type UpstreamResult struct {
	PlayerDice    UpstreamDice `json:"playerDice"`
	BankerDice    UpstreamDice `json:"bankerDice"`
	Outcome       string       `json:"outcome"`
	Multiplier    OpaqueString `json:"multiplier"`
	TieMultiplier OpaqueString `json:"tieMultiplier"`
	Payout        OpaqueString `json:"payout"`
	Status        OpaqueString `json:"status"`
}

type UpstreamData struct {
	ID     OpaqueString   `json:"id"`
	Status OpaqueString   `json:"status"`
	Result UpstreamResult `json:"result"`
}

// UpstreamRound is the latest-round payload served by the source endpoint.
type UpstreamRound struct {
	Data UpstreamData `json:"data"`
}

// RoundID returns the upstream identifier, empty when absent. Numeric ids
// degrade to their decimal string form.
func (u *UpstreamRound) RoundID() string {
	return string(u.Data.ID)
}

// ToRound maps the upstream payload to a Round observed at the given time.
// Totals are recomputed from the dice, the outcome code goes through the
// closed mapping, and the pass-through fields keep their first non-empty
// upstream value.
func (u *UpstreamRound) ToRound(observedAt time.Time) *Round {
	res := u.Data.Result
	r := &Round{
		ObservedAt: observedAt,
		RoundID:    string(u.Data.ID),
		SideADie1:  res.PlayerDice.First,
		SideADie2:  res.PlayerDice.Second,
		SideBDie1:  res.BankerDice.First,
		SideBDie2:  res.BankerDice.Second,
		Outcome:    MapOutcome(res.Outcome),
		Multiplier: firstNonEmpty(string(res.Multiplier), string(res.TieMultiplier)),
		Payout:     string(res.Payout),
		Status:     firstNonEmpty(string(res.Status), string(u.Data.Status)),
	}
	r.ComputeTotals()
	return r
}

// RegisterInput is the push-ingestion body for rounds delivered by an
// external collector instead of the poll loop.
type RegisterInput struct {
	RoundID    string `json:"round_id" validate:"required"`
	SideADie1  int    `json:"side_a_die1"`
	SideADie2  int    `json:"side_a_die2"`
	SideBDie1  int    `json:"side_b_die1"`
	SideBDie2  int    `json:"side_b_die2"`
	Outcome    string `json:"outcome"`
	Multiplier string `json:"multiplier"`
	Payout     string `json:"payout"`
	Status     string `json:"status"`
}

// ToRound builds a Round from a registration, recomputing totals locally.
func (in *RegisterInput) ToRound(observedAt time.Time) *Round {
	r := &Round{
		ObservedAt: observedAt,
		RoundID:    in.RoundID,
		SideADie1:  in.SideADie1,
		SideADie2:  in.SideADie2,
		SideBDie1:  in.SideBDie1,
		SideBDie2:  in.SideBDie2,
		Outcome:    MapOutcome(in.Outcome),
		Multiplier: in.Multiplier,
		Payout:     in.Payout,
		Status:     in.Status,
	}
	r.ComputeTotals()
	return r
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
