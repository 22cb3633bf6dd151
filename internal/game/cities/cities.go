// Package cities implements the city-chain mini-game: the user and the bot
// take turns naming cities, each starting with the playable last letter of
// the previous one.
package cities

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"weather-games-bot/internal/game"
	"weather-games-bot/internal/model"
)

//go:embed cities.txt
var citiesFile string

// State is the persisted session state.
type State struct {
	LastCity   string   `json:"last_city"`
	UsedCities []string `json:"used_cities"`
}

// Engine implements the game.Engine interface for the city chain.
type Engine struct {
	valid  map[string]bool
	sorted []string
	rng    *rand.Rand
}

// New creates the engine with a time-seeded random source.
func New() *Engine {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates the engine with the given random source.
func NewWithRand(rng *rand.Rand) *Engine {
	valid := make(map[string]bool)
	for _, line := range strings.Split(citiesFile, "\n") {
		city := strings.ToLower(strings.TrimSpace(line))
		if city != "" {
			valid[city] = true
		}
	}

	// Sorted copy keeps candidate selection deterministic for a fixed seed.
	sorted := make([]string, 0, len(valid))
	for city := range valid {
		sorted = append(sorted, city)
	}
	sort.Strings(sorted)

	return &Engine{valid: valid, sorted: sorted, rng: rng}
}

// Name returns the stored game name.
func (e *Engine) Name() string { return model.GameCities }

// Title returns the display name.
func (e *Engine) Title() string { return "Города" }

// Achievement returns the mastery badge name.
func (e *Engine) Achievement() string { return model.AchievementCities }

// Start begins a session. The first turn has no letter constraint, so there
// is nothing to persist beyond the empty progress blob.
func (e *Engine) Start() (any, string, string) {
	return nil, "Игра 'Города' началась! Назови первый город:", "Назови город:"
}

// Turn plays one city named by the user.
func (e *Engine) Turn(input string, score int, raw json.RawMessage) (*game.TurnResult, error) {
	city := strings.ToLower(strings.TrimSpace(input))

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("failed to decode cities state: %w", err)
	}

	if !e.valid[city] {
		return &game.TurnResult{
			Reply: "Неверный город или его нет в списке. Назови другой город или напиши 'Меню' для выхода.",
			Score: score,
		}, nil
	}
	for _, used := range st.UsedCities {
		if used == city {
			return &game.TurnResult{
				Reply: "Этот город уже был назван! Назови другой город или напиши 'Меню' для выхода.",
				Score: score,
			}, nil
		}
	}

	required := PlayableLetter(st.LastCity)
	if st.LastCity != "" && firstLetter(city) != required {
		return &game.TurnResult{
			Reply: fmt.Sprintf("Город должен начинаться с буквы '%s'. Назови другой город или напиши 'Меню' для выхода.", strings.ToUpper(required)),
			Score: score,
		}, nil
	}

	score += model.TurnScore
	st.UsedCities = append(st.UsedCities, city)
	next := PlayableLetter(city)

	candidates := e.candidates(next, st.UsedCities)
	if len(candidates) == 0 {
		// Nothing left for the bot: the user wins outright. The state is not
		// persisted; only the final score is logged.
		return &game.TurnResult{
			Reply:     fmt.Sprintf("Правильно, но я не нашёл города на '%s'. Ты победил! Очки: %d", strings.ToUpper(next), score),
			Score:     score,
			LogResult: true,
			Ended:     true,
			Mastered:  score >= model.MasteryScore,
		}, nil
	}

	botCity := candidates[e.rng.Intn(len(candidates))]
	st.UsedCities = append(st.UsedCities, botCity)
	st.LastCity = botCity

	if score >= model.MasteryScore {
		return &game.TurnResult{
			Reply:     fmt.Sprintf("Правильно! Бот: %s\nДостижение '%s' (🏙️) получено! Очки: %d", capitalize(botCity), model.AchievementCities, score),
			Score:     score,
			State:     &st,
			LogResult: true,
			Ended:     true,
			Mastered:  true,
		}, nil
	}

	return &game.TurnResult{
		Reply:     fmt.Sprintf("Правильно! Бот: %s\nОчки: %d. Назови следующий город:", capitalize(botCity), score),
		Score:     score,
		State:     &st,
		LogResult: true,
	}, nil
}

// candidates returns valid unused cities starting with the given letter.
func (e *Engine) candidates(letter string, used []string) []string {
	usedSet := make(map[string]bool, len(used))
	for _, c := range used {
		usedSet[c] = true
	}

	var out []string
	for _, city := range e.sorted {
		if strings.HasPrefix(city, letter) && !usedSet[city] {
			out = append(out, city)
		}
	}
	return out
}

// PlayableLetter returns the last letter of a city after stripping any
// trailing soft/hard signs. Empty input yields an empty string.
func PlayableLetter(city string) string {
	runes := []rune(city)
	for len(runes) > 0 && (runes[len(runes)-1] == 'ь' || runes[len(runes)-1] == 'ъ') {
		runes = runes[:len(runes)-1]
	}
	if len(runes) == 0 {
		return ""
	}
	return string(runes[len(runes)-1])
}

// firstLetter returns the first rune of a city as a string.
func firstLetter(city string) string {
	r, size := utf8.DecodeRuneInString(city)
	if size == 0 {
		return ""
	}
	return string(r)
}

// capitalize upper-cases the first rune for display.
func capitalize(city string) string {
	r, size := utf8.DecodeRuneInString(city)
	if size == 0 {
		return city
	}
	return string(unicode.ToUpper(r)) + city[size:]
}
