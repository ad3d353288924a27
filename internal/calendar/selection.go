package calendar

// Phase tracks the two-click date selection flow.
type Phase int

const (
	NoDeparture Phase = iota
	DepartureSet
	Finalized
)

// Selection is the state of a departure/return date pick. Dates are
// YYYY-MM-DD strings, which order lexicographically the same way they order
// chronologically.
type Selection struct {
	Phase     Phase  `json:"phase"`
	Departure string `json:"departure,omitempty"`
	Return    string `json:"return,omitempty"`
	OneWay    bool   `json:"one_way"`
}

func NewSelection(oneWay bool) Selection {
	return Selection{Phase: NoDeparture, OneWay: oneWay}
}

// Click advances the selection for a click on date, given today's date.
// Clicks on past dates are ignored. One-way flows finalize on the first valid
// click. Round-trip flows set the departure first; a click on or before the
// current departure restarts the departure pick, a later click finalizes the
// return.
func (s Selection) Click(date, today string) Selection {
	if date < today {
		return s
	}

	if s.OneWay {
		s.Departure = date
		s.Return = ""
		s.Phase = Finalized
		return s
	}

	if s.Departure == "" || date <= s.Departure {
		s.Departure = date
		s.Return = ""
		s.Phase = DepartureSet
		return s
	}

	s.Return = date
	s.Phase = Finalized
	return s
}
