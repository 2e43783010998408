package models

import (
	"strconv"
	"time"
)

// Outcome is the closed set of round results. Upstream codes outside the
// known mapping collapse to OutcomeUnknown instead of failing the record.
type Outcome string

const (
	OutcomeSideAWin Outcome = "SideAWin"
	OutcomeSideBWin Outcome = "SideBWin"
	OutcomeTie      Outcome = "Tie"
	OutcomeUnknown  Outcome = "Unknown"
)

func MapOutcome(code string) Outcome {
	switch code {
	case "PlayerWon":
		return OutcomeSideAWin
	case "BankerWon":
		return OutcomeSideBWin
	case "Tie":
		return OutcomeTie
	default:
		return OutcomeUnknown
	}
}

// TimeLayout is the wire and on-disk format for observation timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// PartitionKeyLayout names one day partition of the round log.
const PartitionKeyLayout = "2006-01-02"

// Round is one completed game outcome as observed by the collector.
// Totals are always recomputed locally from the dice values; upstream
// never supplies them.
type Round struct {
	ObservedAt time.Time `json:"observed_at"`
	RoundID    string    `json:"round_id"`
	SideADie1  int       `json:"side_a_die1"`
	SideADie2  int       `json:"side_a_die2"`
	SideBDie1  int       `json:"side_b_die1"`
	SideBDie2  int       `json:"side_b_die2"`
	SideATotal int       `json:"side_a_total"`
	SideBTotal int       `json:"side_b_total"`
	Outcome    Outcome   `json:"outcome"`
	Multiplier string    `json:"multiplier,omitempty"`
	Payout     string    `json:"payout,omitempty"`
	Status     string    `json:"status,omitempty"`
}

// ComputeTotals derives the side totals from the dice values, overwriting
// whatever was set before.
func (r *Round) ComputeTotals() {
	r.SideATotal = r.SideADie1 + r.SideADie2
	r.SideBTotal = r.SideBDie1 + r.SideBDie2
}

// PartitionKey returns the day partition this round belongs to.
func (r *Round) PartitionKey() string {
	return r.ObservedAt.Format(PartitionKeyLayout)
}

// RoundHeader lists every persisted field in its fixed column order.
func RoundHeader() []string {
	return []string{
		"observed_at", "round_id",
		"side_a_die1", "side_a_die2", "side_b_die1", "side_b_die2",
		"side_a_total", "side_b_total",
		"outcome", "multiplier", "payout", "status",
	}
}

// CSVRow encodes the round as one row in RoundHeader order.
func (r *Round) CSVRow() []string {
	return []string{
		r.ObservedAt.Format(TimeLayout),
		r.RoundID,
		strconv.Itoa(r.SideADie1),
		strconv.Itoa(r.SideADie2),
		strconv.Itoa(r.SideBDie1),
		strconv.Itoa(r.SideBDie2),
		strconv.Itoa(r.SideATotal),
		strconv.Itoa(r.SideBTotal),
		string(r.Outcome),
		r.Multiplier,
		r.Payout,
		r.Status,
	}
}

// RoundFromCSVRow decodes a persisted row. Numeric fields that fail to
// parse come back as zero, matching the collector's tolerance for partial
// upstream data.
func RoundFromCSVRow(row []string) (*Round, error) {
	if len(row) < len(RoundHeader()) {
		return nil, ErrShortRow
	}
	observedAt, err := time.ParseInLocation(TimeLayout, row[0], time.Local)
	if err != nil {
		return nil, err
	}
	r := &Round{
		ObservedAt: observedAt,
		RoundID:    row[1],
		SideADie1:  atoiOrZero(row[2]),
		SideADie2:  atoiOrZero(row[3]),
		SideBDie1:  atoiOrZero(row[4]),
		SideBDie2:  atoiOrZero(row[5]),
		SideATotal: atoiOrZero(row[6]),
		SideBTotal: atoiOrZero(row[7]),
		Outcome:    Outcome(row[8]),
		Multiplier: row[9],
		Payout:     row[10],
		Status:     row[11],
	}
	return r, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
