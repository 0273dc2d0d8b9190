package transform

import (
	"fmt"
)

func init() {
	Register("nest_extraction_result", NestExtractionResult)
	Register("nest_extraction_result_insights", NestExtractionResultInsights)
}

// Capture group layout shared by the two extraction-result transforms:
//
//	1: leading whitespace of the matched block's first line
//	2: extractorId
//	3: confidence
//	4: dataPoints
//	5: data literal (nest_extraction_result only)
//	last: duration
//
// The flat shape these expect looks like:
//
//	{
//	  extractorId: 'demographics',
//	  confidence: 0.85,
//	  dataPoints: 3,
//	  data: { foo: 1 },
//	  timestamp: Date.now(),
//	  duration: 120,
//	}

// NestExtractionResult rewrites a flat extraction-result literal into the
// nested {success, data, confidence, metadata} shape. The original data
// payload is carried over unchanged.
func NestExtractionResult(m Match) ([]byte, error) {
	if err := requireGroups(m, 6, "nest_extraction_result"); err != nil {
		return nil, err
	}
	return nestedResult(m.Group(1), m.Group(2), m.Group(3), m.Group(4), m.Group(5), m.Group(6)), nil
}

// NestExtractionResultInsights handles the flat variant that carries a
// metadata.insights line and an empty data payload. The insights are
// dropped, matching the target type's shape.
func NestExtractionResultInsights(m Match) ([]byte, error) {
	if err := requireGroups(m, 5, "nest_extraction_result_insights"); err != nil {
		return nil, err
	}
	return nestedResult(m.Group(1), m.Group(2), m.Group(3), m.Group(4), "{}", m.Group(5)), nil
}

func nestedResult(indent, extractorID, confidence, dataPoints, data, duration string) []byte {
	return Block(indent,
		"{",
		"  success: true,",
		fmt.Sprintf("  data: %s,", data),
		"  confidence: {",
		fmt.Sprintf("    overall: %s,", confidence),
		fmt.Sprintf("    dataQuality: %s,", confidence),
		fmt.Sprintf("    sourceCount: %s,", dataPoints),
		"  },",
		"  metadata: {",
		fmt.Sprintf("    extractorId: '%s',", extractorID),
		"    taskType: 'customer_profile' as any,",
		"    model: 'HAIKU' as any,",
		"    fromCache: false,",
		fmt.Sprintf("    timing: { total: %s },", duration),
		"    timestamp: Date.now(),",
		"  },",
		"} as any",
	)
}
