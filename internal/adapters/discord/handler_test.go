package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interaction(channelID string, member *discordgo.Member) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ChannelID: channelID,
		Member:    member,
	}}
}

func TestChannelRef(t *testing.T) {
	ref, err := channelRef(interaction("123456", nil))
	require.NoError(t, err)
	assert.Equal(t, int64(123456), ref.ChannelID)
	assert.Zero(t, ref.EventID)

	_, err = channelRef(interaction("not-a-snowflake", nil))
	assert.Error(t, err)
}

func TestCallerOf(t *testing.T) {
	t.Run("nick wins", func(t *testing.T) {
		caller, err := callerOf(interaction("1", &discordgo.Member{
			Nick: "Nick",
			User: &discordgo.User{ID: "42", Username: "user", GlobalName: "Global"},
		}))
		require.NoError(t, err)
		assert.Equal(t, int64(42), caller.ID)
		assert.Equal(t, "Nick", caller.Name)
	})

	t.Run("global name over username", func(t *testing.T) {
		caller, err := callerOf(interaction("1", &discordgo.Member{
			User: &discordgo.User{ID: "42", Username: "user", GlobalName: "Global"},
		}))
		require.NoError(t, err)
		assert.Equal(t, "Global", caller.Name)
	})

	t.Run("missing member", func(t *testing.T) {
		_, err := callerOf(interaction("1", nil))
		assert.Error(t, err)
	})
}

func TestOptionMap(t *testing.T) {
	opts := namedOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "number", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
		{Name: "name", Type: discordgo.ApplicationCommandOptionString, Value: "Medic"},
	})

	assert.True(t, opts.has("number"))
	assert.False(t, opts.has("missing"))
	assert.Equal(t, int64(3), opts.integer("number"))
	assert.Equal(t, "Medic", opts.text("name"))
	assert.Zero(t, opts.integer("missing"))
	assert.Empty(t, opts.text("missing"))
}
