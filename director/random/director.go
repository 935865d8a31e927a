package random

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/gosenku/game"
)

// Director plays a uniformly random legal move each time it acts
type Director struct {
	engine *game.Engine
	rand   *rand.Rand
	log    logrus.FieldLogger
}

func NewDirector(seed int64, log logrus.FieldLogger) *Director {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Director{
		rand: rand.New(rand.NewSource(seed)),
		log:  log.WithField("director", "random"),
	}
}

func (director *Director) Init(engine *game.Engine) {
	director.engine = engine
}

func (director *Director) Act() bool {
	if director.engine == nil {
		return false
	}

	moves := director.engine.LegalMoves()
	if len(moves) == 0 {
		director.log.Debug("No moves left")
		return false
	}

	move := moves[director.rand.Intn(len(moves))]
	director.log.WithFields(logrus.Fields{
		"move":    move.String(),
		"choices": len(moves),
	}).Debug("Playing move")

	return director.engine.AttemptMove(move.Origin, move.Dest)
}

func (director *Director) End() {
	director.engine = nil
}

var _ game.Director = (*Director)(nil)
