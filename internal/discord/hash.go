package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// commandFingerprint is the subset of a command definition that matters for
// registration. Hashing this instead of the raw struct keeps the digest
// stable across discordgo upgrades that add fields we never set.
type commandFingerprint struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Type        int                 `json:"type"`
	Options     []optionFingerprint `json:"options,omitempty"`
}

type optionFingerprint struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Type        int                 `json:"type"`
	Required    bool                `json:"required"`
	Choices     []choiceFingerprint `json:"choices,omitempty"`
	Options     []optionFingerprint `json:"options,omitempty"`
}

type choiceFingerprint struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// hashCommand digests a normalized definition. Options are sorted by name so
// declaration order does not force a re-register.
func hashCommand(def *discordgo.ApplicationCommand) string {
	fp := commandFingerprint{
		Name:        def.Name,
		Description: def.Description,
		Type:        int(def.Type),
		Options:     fingerprintOptions(def.Options),
	}
	raw, err := json.Marshal(fp)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", sha1.Sum(raw))
}

func fingerprintOptions(opts []*discordgo.ApplicationCommandOption) []optionFingerprint {
	if len(opts) == 0 {
		return nil
	}
	out := make([]optionFingerprint, 0, len(opts))
	for _, o := range opts {
		fp := optionFingerprint{
			Name:        o.Name,
			Description: o.Description,
			Type:        int(o.Type),
			Required:    o.Required,
			Options:     fingerprintOptions(o.Options),
		}
		for _, c := range o.Choices {
			fp.Choices = append(fp.Choices, choiceFingerprint{Name: c.Name, Value: c.Value})
		}
		out = append(out, fp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
