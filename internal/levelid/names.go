package levelid

var eraNames = [MaxEra + 1]string{
	"Stone Age",
	"Bronze Age",
	"Iron Age",
	"Classical",
	"Medieval",
	"Renaissance",
	"Industrial",
	"Modern",
	"Information",
	"Future",
}

var difficultyNames = [MaxDifficulty + 1]string{
	"Easy",
	"Normal",
	"Hard",
	"Nightmare",
}

// EraName returns the display name for an era index, or "Unknown".
func EraName(era int) string {
	if era < 0 || era > MaxEra {
		return "Unknown"
	}
	return eraNames[era]
}

// DifficultyName returns the display name for a difficulty tier, or "Unknown".
func DifficultyName(difficulty int) string {
	if difficulty < 0 || difficulty > MaxDifficulty {
		return "Unknown"
	}
	return difficultyNames[difficulty]
}
