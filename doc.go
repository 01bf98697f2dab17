// Package cofprep prepares the COF methane-uptake teaching dataset for an
// introductory machine learning competition.
//
// The repository covers two sides of the competition:
//
// Organizer side — the Dataset Partitioner, a one-shot batch transform that
// loads the raw covalent organic framework table, drops identifier and
// alternate-target columns, carves out a deliberately biased 100-row held-out
// set, injects synthetic missingness into the remaining training rows and
// writes the four Kaggle-format artifacts (train.csv, test.csv, solution.csv,
// sample_submission.csv). The transform is fully deterministic under a fixed
// seed; see the pipeline package.
//
// Learner side — the walkthrough pieces a participant needs on top of the
// published files: exploratory statistics and plots (eda), missing-value
// imputation and scaling (preprocessing), a baseline linear model (linear),
// leaderboard metrics (metrics) and submission-file handling (submission).
//
// # Quick Start
//
// Regenerate the competition files:
//
//	cfg := pipeline.DefaultConfig("cof_raw.csv", "out")
//	if err := pipeline.Run(cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Train the baseline and produce a submission: see examples/baseline.
package cofprep
