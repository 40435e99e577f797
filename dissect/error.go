package dissect

import "errors"

var ErrNoGames = errors.New("dissect: no games found on page")
var ErrInvalidSide = errors.New("dissect: invalid round side")
var ErrNoPlayer = errors.New("dissect: no player selected")
var ErrPlayerNotFound = errors.New("dissect: player not found in any game")
