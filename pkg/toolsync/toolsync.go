// SPDX-FileCopyrightText: Copyright The Sidearm Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolsync installs or updates every tool of the manifest.
package toolsync

import (
	"context"
	"time"

	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"

	"github.com/sidearm-dev/sidearm/pkg/installer"
	"github.com/sidearm-dev/sidearm/pkg/sidearmtype"
	"github.com/sidearm-dev/sidearm/pkg/store"
)

// Skip is a manifest entry that failed validation.
type Skip struct {
	// Index is the position of the entry in tools.json.
	Index int
	Tool  sidearmtype.Tool
	Err   error
}

type Summary struct {
	Results  []*installer.Result
	Skipped  []Skip
	Duration time.Duration
}

// Failed returns the results that did not succeed.
func (s *Summary) Failed() []*installer.Result {
	var failed []*installer.Result
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Sync loads the manifest once and processes every entry in order.
// Invalid entries are skipped and failures of individual tools are recorded
// in the summary; neither stops the run. Only a failure to read the manifest
// is returned as an error.
func Sync(ctx context.Context, st *store.Store, cfg *sidearmtype.Config, inst *installer.Installer) (*Summary, error) {
	start := time.Now()
	tools, err := st.LoadManifest(cfg)
	if err != nil {
		return nil, err
	}
	summary := &Summary{}
	for i, t := range tools {
		if err := sidearmtype.Validate(t); err != nil {
			logrus.Warnf("Skipping invalid entry: %v", err)
			summary.Skipped = append(summary.Skipped, Skip{Index: i, Tool: t, Err: err})
			continue
		}
		res := inst.Install(ctx, t)
		summary.Results = append(summary.Results, res)
		if res.OK() {
			logrus.Infof("%s => Done (%s)", t.Name, units.HumanDuration(res.Duration))
		} else {
			logrus.Warnf("%s => Failed: %v", t.Name, res.Err)
		}
	}
	summary.Duration = time.Since(start)
	logrus.Infof("All done. %d processed, %d failed, %d skipped in %s",
		len(summary.Results), len(summary.Failed()), len(summary.Skipped), units.HumanDuration(summary.Duration))
	return summary, nil
}
