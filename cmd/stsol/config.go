// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/stakepool/stsol/program"
	"github.com/stakepool/stsol/program/perf"
	"github.com/stakepool/stsol/sol"
	"github.com/stakepool/stsol/token"
)

// poolConfig is the YAML document accepted by create-pool. Rates are
// decimal percentages such as "97.5".
type poolConfig struct {
	Manager            sol.Pubkey               `yaml:"manager"`
	Treasury           sol.Pubkey               `yaml:"treasury"`
	Developer          sol.Pubkey               `yaml:"developer"`
	RewardDistribution token.RewardDistribution `yaml:"reward-distribution"`
	Criteria           *perf.Criteria           `yaml:"criteria"`
	MaxValidators      uint32                   `yaml:"max-validators"`
	MaxMaintainers     uint32                   `yaml:"max-maintainers"`
}

func parsePoolConfig(data []byte) (*program.Config, error) {
	var pc poolConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pc); err != nil {
		return nil, errors.Wrap(err, "decode pool config")
	}

	if pc.Manager.IsZero() {
		return nil, errors.New("pool config: manager is required")
	}
	if pc.Treasury.IsZero() || pc.Developer.IsZero() {
		return nil, errors.New("pool config: treasury and developer are required")
	}

	criteria := perf.DefaultCriteria()
	if pc.Criteria != nil {
		criteria = *pc.Criteria
	}
	return &program.Config{
		Manager:            pc.Manager,
		Treasury:           pc.Treasury,
		Developer:          pc.Developer,
		RewardDistribution: pc.RewardDistribution,
		Criteria:           criteria,
		MaxValidators:      pc.MaxValidators,
		MaxMaintainers:     pc.MaxMaintainers,
	}, nil
}

func loadPoolConfig(path string) (*program.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read pool config")
	}
	return parsePoolConfig(data)
}
