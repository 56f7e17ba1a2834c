// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"os"
	"time"

	"sigs.k8s.io/yaml"
)

// config lets -config file.yaml set the same knobs the read/edit flags
// do, for callers that would rather check in a config file than pass
// flags every time.
type config struct {
	TokenBudget      int `json:"token_budget"`
	MTimeToleranceMS int `json:"mtime_tolerance_ms"`
}

func loadConfig(path string) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, err
	}
	var c config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return config{}, err
	}
	return c, nil
}

func (c config) tolerance() time.Duration {
	if c.MTimeToleranceMS <= 0 {
		return 0
	}
	return time.Duration(c.MTimeToleranceMS) * time.Millisecond
}
