package user

type User struct {
	Id          int
	Uid         string
	Email       string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	// ISO 4217 code used when rendering amounts
	Currency string
	// Persona name (coach, frugal, friendly) or a free-form instruction for daily insights
	InsightPersona string
}

const (
	DefaultCurrency = "USD"
	DefaultPersona  = "coach"
)

func (s Settings) withDefaults() Settings {
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if s.InsightPersona == "" {
		s.InsightPersona = DefaultPersona
	}
	return s
}
