// Package flights answers status queries from a small static schedule.
// It exists to exercise the tool surface without an upstream dependency.
package flights

import (
	"fmt"
	"strings"

	"github.com/gophertrace/flameprof/pkg/errors"
)

// Status describes one scheduled flight.
type Status struct {
	Flight        string `json:"flight"`
	Airline       string `json:"airline"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Status        string `json:"status"`
	Gate          string `json:"gate"`
	ScheduledTime string `json:"scheduledTime"`
}

var schedule = []Status{
	{Flight: "UA100", Airline: "United", Origin: "SFO", Destination: "EWR", Status: "on time", Gate: "F12", ScheduledTime: "08:15"},
	{Flight: "UA2402", Airline: "United", Origin: "ORD", Destination: "DEN", Status: "delayed", Gate: "B22", ScheduledTime: "11:40"},
	{Flight: "DL89", Airline: "Delta", Origin: "ATL", Destination: "LHR", Status: "boarding", Gate: "E3", ScheduledTime: "17:55"},
	{Flight: "DL1181", Airline: "Delta", Origin: "JFK", Destination: "SEA", Status: "on time", Gate: "C61", ScheduledTime: "09:30"},
	{Flight: "AA919", Airline: "American", Origin: "DFW", Destination: "MIA", Status: "cancelled", Gate: "", ScheduledTime: "14:05"},
	{Flight: "LH454", Airline: "Lufthansa", Origin: "FRA", Destination: "SFO", Status: "in flight", Gate: "Z54", ScheduledTime: "10:20"},
	{Flight: "BA286", Airline: "British Airways", Origin: "SFO", Destination: "LHR", Status: "on time", Gate: "A9", ScheduledTime: "16:45"},
	{Flight: "JL7", Airline: "Japan Airlines", Origin: "HND", Destination: "SFO", Status: "landed", Gate: "G93", ScheduledTime: "18:10"},
}

// Lookup finds the flight with the given code. Codes are matched case
// insensitively and with surrounding whitespace trimmed.
func Lookup(code string) (*Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, errors.NewErrorInvalid("flight code is a required argument")
	}

	for i := range schedule {
		if schedule[i].Flight == normalized {
			s := schedule[i]
			return &s, nil
		}
	}
	return nil, errors.NewErrorInvalid(fmt.Sprintf("no flight found with code %q", normalized))
}

// Known lists every flight code in the schedule.
func Known() []string {
	codes := make([]string, 0, len(schedule))
	for i := range schedule {
		codes = append(codes, schedule[i].Flight)
	}
	return codes
}
