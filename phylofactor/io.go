// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylofactor

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TSV writes the factors as a TSV file.
//
// The file contains the following fields:
//
//   - factor, the index of the factor (starting at 1)
//   - edge, the ID of the node below the edge
//   - group, the terminals below the edge (comma separated)
//   - complement, the other terminals of the split bin
//   - alpha, beta, the coefficients of the regression
//   - r2, the coefficient of determination
//   - F, pvalue, the F-test of the regression
//   - expvar, the fraction of total variance explained by the factor
func (r *Result) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"factor", "edge", "group", "complement", "alpha", "beta", "r2", "F", "pvalue", "expvar"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, f := range r.factors {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(f.Edge),
			strings.Join(f.Group, ","),
			strings.Join(f.Complement, ","),
			strconv.FormatFloat(f.Fit.Alpha, 'f', 6, 64),
			strconv.FormatFloat(f.Fit.Beta, 'f', 6, 64),
			strconv.FormatFloat(f.Fit.R2, 'f', 6, 64),
			strconv.FormatFloat(f.Fit.F, 'f', 6, 64),
			strconv.FormatFloat(f.Fit.PValue, 'g', 6, 64),
			strconv.FormatFloat(f.ExpVar, 'f', 6, 64),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// BalanceTSV writes the balance of each factor
// at each sample,
// with the fields factor, sample, covariate, and balance.
func (r *Result) BalanceTSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"factor", "sample", "covariate", "balance"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, f := range r.factors {
		fv := strconv.Itoa(i + 1)
		for j, s := range r.samples {
			row := []string{
				fv,
				s,
				strconv.FormatFloat(r.covariate[j], 'f', 6, 64),
				strconv.FormatFloat(f.Balance[j], 'f', 6, 64),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
