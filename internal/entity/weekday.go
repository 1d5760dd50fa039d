package entity

// Weekday is an ISO day number, Monday = 1 through Sunday = 7.
//
// Weekday must not implement fmt.Stringer: validators format the raw number.
type Weekday int

var weekdayNames = [...]string{
	"понедельник",
	"вторник",
	"среда",
	"четверг",
	"пятница",
	"суббота",
	"воскресенье",
}

var weekdayTitles = [...]string{
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
	"Воскресенье",
}

func (d Weekday) IsValid() bool { return d >= 1 && d <= 7 }

// Name returns the lowercase day name used for search matching. ok is false
// when d is outside 1..7.
func (d Weekday) Name() (name string, ok bool) {
	if !d.IsValid() {
		return "", false
	}
	return weekdayNames[d-1], true
}

// Title returns the capitalised display name.
func (d Weekday) Title() (title string, ok bool) {
	if !d.IsValid() {
		return "", false
	}
	return weekdayTitles[d-1], true
}

// Choice is a selectable value in a form descriptor.
type Choice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// WeekdayChoices lists the seven days in order.
func WeekdayChoices() []Choice {
	out := make([]Choice, 0, len(weekdayTitles))
	for i, title := range weekdayTitles {
		out = append(out, Choice{Value: i + 1, Label: title})
	}
	return out
}
