package main

import (
	"bytes"
	"fmt"
)

type lineEntry struct {
	firstPos, lastPos int
}

// splitSamples treats content as multiple samples. The first line is the separator:
// each line starting with the same sequence of non-spacing characters starts a new sample,
// the rest of a separator line is a comment.
// The last LF preceding a separator is not included in the sample.
func splitSamples(name string, content []byte) []input {
	lines := contentLines(content)
	if len(lines) == 0 {
		return nil
	}

	var result []input
	separator := linePrefix(content[lines[0].firstPos:lines[0].lastPos])
	sampleIndex := 1
	lineIndex := 1
	for lineIndex < len(lines) {
		sample, lineCnt := sourceSample(content, lines[lineIndex:], separator)
		sampleName := fmt.Sprintf("%s, sample #%d (lines %d-%d)", name, sampleIndex, lineIndex+1, lineIndex+lineCnt)
		result = append(result, input{sampleName, sample})
		sampleIndex++
		lineIndex += lineCnt + 1
	}

	return result
}

func contentLines(content []byte) []lineEntry {
	var result []lineEntry
	pos := 0
	for pos < len(content) {
		newPos := bytes.IndexByte(content[pos:], '\n')
		if newPos < 0 {
			result = append(result, lineEntry{pos, len(content)})
			break
		}

		result = append(result, lineEntry{pos, pos + newPos})
		pos += newPos + 1
	}
	return result
}

func linePrefix(line []byte) []byte {
	for i, b := range line {
		if b <= ' ' {
			return line[:i]
		}
	}

	return line
}

func sourceSample(content []byte, lines []lineEntry, separator []byte) ([]byte, int) {
	for i, entry := range lines {
		if bytes.HasPrefix(content[entry.firstPos:entry.lastPos], separator) {
			if i == 0 {
				return nil, 0
			}
			return content[lines[0].firstPos:lines[i-1].lastPos], i
		}
	}

	last := lines[len(lines)-1]
	return content[lines[0].firstPos:last.lastPos], len(lines)
}
