package games

import (
	"github.com/bwmarrin/discordgo"

	"bookie/service"
)

type Feature struct {
	gameService service.GameService
}

func New(gameService service.GameService) *Feature {
	return &Feature{
		gameService: gameService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleGames(s, i)
}
