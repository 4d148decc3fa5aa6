// Copyright 2024 The FaddlMatch Authors. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package pumps

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/faddlmatch/platform/internal/pump/analytics"
	"github.com/faddlmatch/platform/pkg/log"
)

// CSVPump appends activity records to hourly csv files.
type CSVPump struct {
	csvConf *CSVConf
	CommonPumpConfig
}

// CSVConf defines csv specific options.
type CSVConf struct {
	// Directory the csv files are written to.
	CSVDir string `mapstructure:"csv_dir"`
}

var csvFieldNames = []string{
	"timestamp",
	"username",
	"kind",
	"provider",
	"event_type",
	"detail",
}

// New create a csv pump instance.
func (c *CSVPump) New() Pump {
	return &CSVPump{}
}

// GetName returns the csv pump name.
func (c *CSVPump) GetName() string {
	return "CSV Pump"
}

// Init initialize the csv pump instance.
func (c *CSVPump) Init(conf interface{}) error {
	c.csvConf = &CSVConf{}
	if err := mapstructure.Decode(conf, c.csvConf); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := os.MkdirAll(c.csvConf.CSVDir, 0o777); err != nil {
		log.Errorf("create csv directory: %s", err.Error())
	}

	log.Debugf("CSV Initialized")

	return nil
}

// WriteData write the activity records to the csv file of the current hour.
func (c *CSVPump) WriteData(ctx context.Context, data []interface{}) error {
	curtime := time.Now()
	fname := fmt.Sprintf("%d-%s-%d-%d.csv", curtime.Year(), curtime.Month().String(), curtime.Day(), curtime.Hour())
	fname = path.Join(c.csvConf.CSVDir, fname)

	var outfile *os.File
	var appendHeader bool

	if _, err := os.Stat(fname); os.IsNotExist(err) {
		var createErr error
		outfile, createErr = os.Create(fname)
		if createErr != nil {
			log.Errorf("Failed to create new CSV file: %s", createErr.Error())
		}
		appendHeader = true
	} else {
		var appendErr error
		outfile, appendErr = os.OpenFile(fname, os.O_APPEND|os.O_WRONLY, 0o600)
		if appendErr != nil {
			log.Errorf("Failed to open CSV file: %s", appendErr.Error())
		}
	}
	defer outfile.Close()

	writer := csv.NewWriter(outfile)

	if appendHeader {
		if err := writer.Write(csvFieldNames); err != nil {
			log.Errorf("Failed to write file headers: %s", err.Error())

			return err
		}
	}

	for _, v := range data {
		decoded, _ := v.(analytics.AnalyticsRecord)

		toWrite := []string{
			strconv.FormatInt(decoded.TimeStamp, 10),
			decoded.Username,
			decoded.Kind,
			decoded.Provider,
			decoded.EventType,
			decoded.Detail,
		}
		if err := writer.Write(toWrite); err != nil {
			log.Error("File write failed!")
			log.Error(err.Error())
		}
	}

	writer.Flush()
	log.Debugf("Purged %d records...", len(data))

	return nil
}
