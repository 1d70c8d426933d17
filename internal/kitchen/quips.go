package kitchen

// StaffBio is a member of the brigade who shouts from the line
type StaffBio struct {
	Name  string   `json:"name"`
	Role  string   `json:"role"`
	Quips []string `json:"quips"`
}

// Quip is one line shouted across the kitchen
type Quip struct {
	Speaker string `json:"speaker"`
	Role    string `json:"role"`
	Text    string `json:"text"`
}

// StressThreshold is the pending ticket count above which the brigade starts panicking.
const StressThreshold = 5

var brigade = []StaffBio{
	{Name: "Marco", Role: "Grill Chef", Quips: []string{"Fire, walking!", "Meat rests when I say it rests.", "Hot behind!", "It's raw because you asked for blue!"}},
	{Name: "Sofia", Role: "Sous Chef", Quips: []string{"Yes Chef!", "Wipe that rim!", "Tickets dying in the window!", "Pick up table 4!"}},
	{Name: "James", Role: "Runner", Quips: []string{"Service please!", "Runner available!", "Corner!", "Dropping bread!"}},
	{Name: "Yuki", Role: "Pastry Chef", Quips: []string{"Ice cream is melting.", "Delicate!", "Sugar work is fragile, watch out.", "Who touched my station?"}},
	{Name: "Pierre", Role: "Saucier", Quips: []string{"More butter!", "Reduce, reduce!", "Sauce is life.", "Too thick, fix it."}},
	{Name: "Amara", Role: "Garde Manger", Quips: []string{"Cold apps ready!", "Salad flying!", "Fresh herbs down.", "Sharp knife!"}},
	{Name: "Diego", Role: "Dishwasher", Quips: []string{"Plates hot!", "Silverware incoming!", "Clear the pit!", "Rack out!"}},
	{Name: "Chen", Role: "Line Cook", Quips: []string{"Swinging to sauté!", "I got you covered.", "All day!", "86 sea bass!"}},
}

var stressLines = []string{
	"We're drowning here!",
	"Pick up, pick up!",
	"All hands on deck!",
	"I need a runner NOW!",
	"Ticket machine won't stop!",
	"Who's watching the pass?!",
	"Behind! Hot! Move!",
	"Where is my garnish?!",
}

var successLines = []string{
	"Beautiful plating!",
	"That's money!",
	"One down, fifty to go!",
	"Service please!",
	"Selling table 4!",
	"Walking in!",
	"Perfect temp, Chef.",
	"Smooth service.",
}

// Brigade returns the staff bios
func Brigade() []StaffBio {
	out := make([]StaffBio, len(brigade))
	copy(out, brigade)
	return out
}

// NextQuip picks a line from a random member of the brigade. When more than
// StressThreshold tickets are waiting, 70% of lines are stress calls.
func NextQuip(rng Random, pending int) Quip {
	member := brigade[rng.Intn(len(brigade))]
	if pending > StressThreshold && rng.Float64() < 0.7 {
		return Quip{Speaker: member.Name, Role: member.Role, Text: stressLines[rng.Intn(len(stressLines))]}
	}
	return Quip{Speaker: member.Name, Role: member.Role, Text: member.Quips[rng.Intn(len(member.Quips))]}
}

// SuccessQuip is shouted when a plate goes out
func SuccessQuip(rng Random) Quip {
	member := brigade[rng.Intn(len(brigade))]
	return Quip{Speaker: member.Name, Role: member.Role, Text: successLines[rng.Intn(len(successLines))]}
}
