// Package compose renders structured answers as chat replies. Each answer
// kind has a handful of phrasings picked at random so the bot does not sound
// like a form letter.
package compose

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

// Composer turns answers and resolution errors into user-facing text.
// The random source is injectable so tests can pin phrasing.
type Composer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewComposer(rng *rand.Rand) *Composer {
	return &Composer{rng: rng}
}

func (c *Composer) pick(variants []string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return variants[c.rng.Intn(len(variants))]
}

// Compose renders a structured answer.
func (c *Composer) Compose(a *domain.Answer) string {
	switch a.Kind {
	case domain.AnswerPrice:
		return c.composePrice(a)
	case domain.AnswerMultiPrice:
		return c.composeMultiPrice(a)
	case domain.AnswerTrend:
		return c.composeTrend(a)
	case domain.AnswerCheapest:
		return c.composeCheapest(a)
	case domain.AnswerForecast:
		return c.composeForecast(a)
	default:
		return c.Help()
	}
}

func (c *Composer) composePrice(a *domain.Answer) string {
	line := a.Lines[0]
	where := placeSuffix(a)
	templates := []string{
		"The latest price of %s%s is ₦%.2f (as of %s).",
		"%s%s currently goes for ₦%.2f, last recorded on %s.",
		"Right now %s%s sells at ₦%.2f (recorded %s).",
	}
	return fmt.Sprintf(c.pick(templates), line.Food, where, line.Price, line.Date.Format("2 Jan 2006"))
}

func (c *Composer) composeMultiPrice(a *domain.Answer) string {
	intro := c.pick([]string{
		"Here are the latest prices I found:",
		"I found a few matches. Latest prices:",
		"Latest prices for the items you mentioned:",
	})

	var b strings.Builder
	b.WriteString(intro)
	for _, line := range a.Lines {
		if line.Missing {
			fmt.Fprintf(&b, "\n• %s: no data available", line.Food)
			continue
		}
		fmt.Fprintf(&b, "\n• %s: ₦%.2f (as of %s)", line.Food, line.Price, line.Date.Format("2 Jan 2006"))
	}
	return b.String()
}

func (c *Composer) composeTrend(a *domain.Answer) string {
	t := a.Trend
	emoji, word := "🔄", "stable"
	switch t.Direction {
	case domain.TrendRising:
		emoji, word = "📈", "rising"
	case domain.TrendFalling:
		emoji, word = "📉", "falling"
	}

	templates := []string{
		"%s The price of %s%s is %s. Latest: ₦%.2f, 30-day avg: ₦%.2f (%+.1f%%), 90-day avg: ₦%.2f (%+.1f%%).",
		"%s %s%s has been %s lately. It now averages ₦%.2f against a 30-day average of ₦%.2f (%+.1f%%) and a 90-day average of ₦%.2f (%+.1f%%).",
		"%s Trend check for %s%s: %s. Current ₦%.2f vs ₦%.2f over 30 days (%+.1f%%) and ₦%.2f over 90 days (%+.1f%%).",
	}
	return fmt.Sprintf(c.pick(templates), emoji, a.Food, placeSuffix(a), word,
		t.Latest, t.Avg30, t.Pct30, t.Avg90, t.Pct90)
}

func (c *Composer) composeCheapest(a *domain.Answer) string {
	intro := c.pick([]string{
		"Here's where %s%s is cheapest:",
		"Best spots for cheap %s%s:",
		"Lowest average prices for %s%s:",
	})

	var b strings.Builder
	fmt.Fprintf(&b, intro, a.Food, placeSuffix(a))
	if len(a.CheapestLGAs) > 0 {
		b.WriteString("\nBy LGA:")
		for i, g := range a.CheapestLGAs {
			fmt.Fprintf(&b, "\n%d. %s — ₦%.2f avg", i+1, g.Name, g.MeanPrice)
		}
	}
	if len(a.CheapestOutlets) > 0 {
		b.WriteString("\nBy outlet type:")
		for i, g := range a.CheapestOutlets {
			fmt.Fprintf(&b, "\n%d. %s — ₦%.2f avg", i+1, g.Name, g.MeanPrice)
		}
	}
	return b.String()
}

func (c *Composer) composeForecast(a *domain.Answer) string {
	horizon := ""
	if a.Horizon != nil {
		unit := string(a.Horizon.Unit)
		if a.Horizon.Count != 1 {
			unit += "s"
		}
		horizon = fmt.Sprintf("%d %s", a.Horizon.Count, unit)
	}

	if len(a.Forecasts) == 1 {
		f := a.Forecasts[0]
		templates := []string{
			"In %s, I expect %s%s to cost around ₦%.2f.",
			"My forecast for %s from now puts %s%s at about ₦%.2f.",
			"Looking %s ahead, %s%s should be near ₦%.2f.",
		}
		return fmt.Sprintf(c.pick(templates), horizon, f.Food, placeSuffix(a), f.Price)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Forecasts for %s from now:", horizon)
	for _, f := range a.Forecasts {
		fmt.Fprintf(&b, "\n• %s: around ₦%.2f", f.Food, f.Price)
	}
	return b.String()
}

// ComposeError renders a resolution failure as an explanatory reply.
func (c *Composer) ComposeError(rerr *domain.ResolutionError) string {
	switch rerr.Code {
	case domain.ErrFoodNotRecognized:
		msg := c.pick([]string{
			"I couldn't find that food item in my records.",
			"Hmm, I don't recognise that food item.",
			"That food item isn't in my price data.",
		})
		return msg + didYouMean(rerr.Suggestions)
	case domain.ErrRegionNotRecognized:
		return "I don't have data for that state." + didYouMean(rerr.Suggestions)
	case domain.ErrSubRegionNotRecognized:
		return "I don't recognise that LGA." + didYouMean(rerr.Suggestions)
	case domain.ErrOutletNotRecognized:
		return "I don't recognise that outlet type." + didYouMean(rerr.Suggestions)
	case domain.ErrNoData:
		return c.pick([]string{
			"I don't have any price records matching that query.",
			"No data matched that combination, sorry.",
			"Nothing in my records matches that query.",
		})
	case domain.ErrForecasterUnavailable:
		return c.pick([]string{
			"The forecasting service isn't responding right now. Please try again shortly.",
			"I couldn't reach the price predictor. Try again in a moment.",
		})
	default:
		return "Sorry, something went wrong on my end. Please try again."
	}
}

// Help returns usage guidance when no question can be answered.
func (c *Composer) Help() string {
	return strings.Join([]string{
		"I can help you with Nigerian food prices. Try asking:",
		"• \"What is the price of rice in Lagos?\"",
		"• \"Show me the price trend of beans\"",
		"• \"Cheapest LGA for garri in Kano\"",
		"• \"Predict the price of yam in 2 months\"",
	}, "\n")
}

func didYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return " Did you mean: " + strings.Join(suggestions, ", ") + "?"
}

func placeSuffix(a *domain.Answer) string {
	var parts []string
	if a.LGA != "" {
		parts = append(parts, a.LGA)
	}
	if a.State != "" {
		parts = append(parts, a.State)
	}
	if a.Outlet != "" {
		parts = append(parts, "("+a.Outlet+")")
	}
	if len(parts) == 0 {
		return ""
	}
	return " in " + strings.Join(parts, ", ")
}
