package gameplay

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/stewardbot/steward/internal/bot"
	"github.com/stewardbot/steward/internal/command"
	"github.com/stewardbot/steward/internal/middleware"
	"github.com/stewardbot/steward/internal/module"
)

var (
	tokenRegex = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	diceRegex  = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
	validOps   = map[string]bool{"+": true, "-": true, "*": true, "/": true}
)

// term is one evaluated operand with the operator that attaches it to the
// ones before it.
type term struct {
	value  int
	desc   string
	op     string
	isDice bool
}

type RollCommand struct{}

func (c *RollCommand) Name() string             { return "roll" }
func (c *RollCommand) Description() string      { return "Roll dice like `2d20+1d6-2`" }
func (c *RollCommand) Module() module.ID        { return module.Gameplay }
func (c *RollCommand) UserPermissions() []int64 { return []int64{} }

func (c *RollCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "formula",
				Description: "Supports `2d6+1d4*2-3` and similar math",
				Required:    true,
			},
		},
	}
}

func (c *RollCommand) Run(ctx interface{}) error {
	switch t := ctx.(type) {
	case *command.SlashInteractionContext:
		formula := ""
		for _, opt := range t.Event.ApplicationCommandData().Options {
			if opt.Name == "formula" {
				formula = strings.ReplaceAll(opt.StringValue(), " ", "")
			}
		}

		pretty, total, err := evalFormula(formula)
		if err != nil {
			return bot.RespondEmbedEphemeral(t.Session, t.Event, &discordgo.MessageEmbed{
				Description: err.Error(),
			})
		}
		return bot.RespondEmbed(t.Session, t.Event, rollEmbed(formula, pretty, total))

	case *command.MessageContext:
		formula := strings.ReplaceAll(strings.Join(t.Args, ""), " ", "")

		pretty, total, err := evalFormula(formula)
		if err != nil {
			return bot.Message(t.Session, t.Event.ChannelID, err.Error())
		}
		return bot.MessageEmbed(t.Session, t.Event.ChannelID, rollEmbed(formula, pretty, total))
	}
	return nil
}

func rollEmbed(formula, pretty string, total int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎲 Dice Roll",
		Description: fmt.Sprintf("**User Input**:\t`%s`\n**Calculation**:\t%s\n**Result**:\t**%d**", formula, pretty, total),
		Color:       bot.EmbedColor,
	}
}

// evalFormula evaluates a dice formula like `2d6+1d4*2-3` and returns a
// pretty per-term breakdown plus the total. Multiplication and division bind
// tighter than addition and subtraction.
func evalFormula(formula string) (string, int, error) {
	tokens := tokenRegex.FindAllString(formula, -1)
	if len(tokens) == 0 {
		return "", 0, errors.New("Can't parse your formula. Try something like `2d6+1d4*2-3`")
	}

	var terms []term
	currentOp := "+"
	for _, token := range tokens {
		if validOps[token] {
			currentOp = token
			continue
		}

		val, desc, err := evaluateToken(token)
		if err != nil {
			return "", 0, fmt.Errorf("Failed to evaluate `%s`: %v", token, err)
		}
		terms = append(terms, term{
			value:  val,
			desc:   desc,
			op:     currentOp,
			isDice: strings.Contains(desc, "["),
		})
	}

	var merged []term
	for _, t := range terms {
		if t.op == "*" || t.op == "/" {
			if len(merged) == 0 {
				return "", 0, errors.New("Can't multiply or divide by nothing.")
			}
			prev := merged[len(merged)-1]
			merged = merged[:len(merged)-1]

			var newVal int
			switch t.op {
			case "*":
				newVal = prev.value * t.value
			case "/":
				if t.value == 0 {
					return "", 0, errors.New("Can't divide by zero.")
				}
				newVal = prev.value / t.value
			}

			merged = append(merged, term{
				value:  newVal,
				desc:   fmt.Sprintf("%s %s %s", prev.desc, t.op, t.desc),
				op:     prev.op,
				isDice: prev.isDice || t.isDice,
			})
			continue
		}
		merged = append(merged, t)
	}

	total := 0
	var details []string
	for _, t := range merged {
		if len(details) > 0 {
			details = append(details, fmt.Sprintf(" %s ", t.op))
		}
		details = append(details, t.desc)

		switch t.op {
		case "+":
			total += t.value
		case "-":
			total -= t.value
		default:
			return "", 0, fmt.Errorf("Unknown operator: %s", t.op)
		}
	}

	return strings.Join(details, ""), total, nil
}

// evaluateToken resolves one operand: either a dice expression, which rolls,
// or a plain integer.
func evaluateToken(token string) (int, string, error) {
	if diceRegex.MatchString(token) {
		matches := diceRegex.FindStringSubmatch(token)
		countStr, sidesStr := matches[1], matches[2]

		count := 1
		if countStr != "" {
			n, err := strconv.Atoi(countStr)
			if err != nil {
				return 0, "", fmt.Errorf("invalid dice count")
			}
			count = n
		}

		sides, err := strconv.Atoi(sidesStr)
		if err != nil || sides < 2 {
			return 0, "", fmt.Errorf("invalid dice sides")
		}
		if count > 100 || sides > 1000 {
			return 0, "", fmt.Errorf("too big. max 100 dice, 1000 sides")
		}

		var sum int
		var rolls []string
		for i := 0; i < count; i++ {
			r := rand.Intn(sides) + 1
			sum += r
			rolls = append(rolls, strconv.Itoa(r))
		}
		return sum, fmt.Sprintf("`%s` [%s]", token, strings.Join(rolls, ", ")), nil
	}

	num, err := strconv.Atoi(token)
	if err != nil {
		return 0, "", fmt.Errorf("not a number or dice")
	}
	return num, fmt.Sprintf("`%d`", num), nil
}

func init() {
	command.RegisterCommand(
		&RollCommand{},
		middleware.WithModuleAccessCheck(),
		middleware.WithGuildOnly(),
		middleware.WithUserPermissionCheck(),
		middleware.WithCommandLogger(),
	)
}
