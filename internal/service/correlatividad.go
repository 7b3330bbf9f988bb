package service

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/rgarcete009-hue/rgsystem-sub000/internal/dto"
)

// numeroFactura matches "SSS-PPP-NNNNNNN": 3-digit branch, 3-digit point of
// sale, 7-digit zero-padded sequence.
var numeroFactura = regexp.MustCompile(`^(\d{3}-\d{3})-(\d{7})$`)

// AnalizarCorrelatividad audits a set of invoice numbers for sequence gaps.
// Pure function: numbers are parsed into (serie, secuencia) pairs, grouped by
// series, and the missing integers in [min, max] are reported as inclusive
// ranges. Malformed numbers are skipped and counted, never fail the analysis.
func AnalizarCorrelatividad(numeros []string) ([]dto.SerieReporte, int) {
	porSerie := make(map[string]map[int64]struct{})
	malformados := 0

	for _, n := range numeros {
		m := numeroFactura.FindStringSubmatch(n)
		if m == nil {
			malformados++
			continue
		}
		seq, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			malformados++
			continue
		}
		if porSerie[m[1]] == nil {
			porSerie[m[1]] = make(map[int64]struct{})
		}
		porSerie[m[1]][seq] = struct{}{}
	}

	series := make([]string, 0, len(porSerie))
	for serie := range porSerie {
		series = append(series, serie)
	}
	sort.Strings(series)

	reportes := make([]dto.SerieReporte, 0, len(series))
	for _, serie := range series {
		vistos := porSerie[serie]
		secuencias := make([]int64, 0, len(vistos))
		for seq := range vistos {
			secuencias = append(secuencias, seq)
		}
		sort.Slice(secuencias, func(i, j int) bool { return secuencias[i] < secuencias[j] })

		min, max := secuencias[0], secuencias[len(secuencias)-1]
		reportes = append(reportes, dto.SerieReporte{
			Serie:     serie,
			Desde:     fmt.Sprintf("%07d", min),
			Hasta:     fmt.Sprintf("%07d", max),
			Emitidas:  len(secuencias),
			Faltantes: rangosFaltantes(secuencias),
		})
	}
	return reportes, malformados
}

// rangosFaltantes compacts the gaps of a sorted, de-duplicated sequence slice
// into inclusive ranges.
func rangosFaltantes(secuencias []int64) []dto.RangoFaltante {
	faltantes := []dto.RangoFaltante{}
	for i := 1; i < len(secuencias); i++ {
		anterior, actual := secuencias[i-1], secuencias[i]
		if actual-anterior <= 1 {
			continue
		}
		faltantes = append(faltantes, dto.RangoFaltante{
			Desde: fmt.Sprintf("%07d", anterior+1),
			Hasta: fmt.Sprintf("%07d", actual-1),
		})
	}
	return faltantes
}
