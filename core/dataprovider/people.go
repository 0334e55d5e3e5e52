// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package dataprovider

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// peopleJSON is the demo data set served by PeopleProvider.
//
//go:embed people.json
var peopleJSON string

// Person is one row of the demo data set.
type Person struct {
	Name string
	Team string
}

// PeopleProvider serves the embedded demo data set, querying it with gjson.
// The filter is matched as a substring of the person's name.
type PeopleProvider struct{}

// Fetch returns the page of people selected by q.
func (PeopleProvider) Fetch(_ context.Context, q Query) ([]Person, error) {
	matches := gjson.Get(peopleJSON, peoplePath(q.Filter))

	people := make([]Person, 0, len(matches.Array()))

	matches.ForEach(func(_, row gjson.Result) bool {
		people = append(people, Person{
			Name: row.Get("name").String(),
			Team: row.Get("team").String(),
		})

		return true
	})

	return page(people, q), nil
}

// Count returns the number of people matching q's filter.
func (PeopleProvider) Count(_ context.Context, q Query) (int, error) {
	if q.Filter == "" {
		return int(gjson.Get(peopleJSON, "people.#").Int()), nil
	}

	return len(gjson.Get(peopleJSON, peoplePath(q.Filter)).Array()), nil
}

// peoplePath builds the gjson query path for a name filter.
func peoplePath(filter string) string {
	if filter == "" {
		return "people"
	}

	// Quotes would break out of the gjson match pattern; strip them rather
	// than matching nothing.
	filter = strings.ReplaceAll(filter, `"`, "")

	return fmt.Sprintf(`people.#(name%%"*%s*")#`, filter)
}
