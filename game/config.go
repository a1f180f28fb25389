package game

import "github.com/pthm-cable/shells/config"

// config returns the league's configuration.
func (g *Game) config() *config.Config {
	return g.cfg
}
