package genetic

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSelection is returned by SelectionByName for unregistered names.
var ErrUnknownSelection = errors.New("unknown selection strategy")

var selectionFactories = map[string]func(tournamentSize int) SelectionMethod{
	RouletteWheelSelection{}.Name(): func(int) SelectionMethod {
		return RouletteWheelSelection{}
	},
	TournamentSelection{}.Name(): func(size int) SelectionMethod {
		return TournamentSelection{Size: size}
	},
}

// SelectionByName resolves a selection strategy from its configured name.
func SelectionByName(name string, tournamentSize int) (SelectionMethod, error) {
	factory, ok := selectionFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownSelection, name, SelectionNames())
	}
	return factory(tournamentSize), nil
}

// SelectionNames lists registered selection strategies in sorted order.
func SelectionNames() []string {
	names := make([]string, 0, len(selectionFactories))
	for name := range selectionFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
