package slop

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)
var wordPattern = regexp.MustCompile(unicodeWord + `+`)

type TextStats struct {
	WordCount          int     `json:"word_count" yaml:"word_count"`
	SentenceCount      int     `json:"sentence_count" yaml:"sentence_count"`
	CharCount          int     `json:"char_count" yaml:"char_count"`
	MeanSentenceLength float64 `json:"mean_sentence_length" yaml:"mean_sentence_length"`
	SentenceLengthSD   float64 `json:"sentence_length_sd" yaml:"sentence_length_sd"`
}

// WordsPerSentence guards the empty text, which has no sentences.
func (s TextStats) WordsPerSentence() float64 {
	return float64(s.WordCount) / float64(max(s.SentenceCount, 1))
}

// computeStats counts every non-blank segment between terminators, so text
// with words but no terminator is one sentence.
func computeStats(text string) TextStats {
	stats := TextStats{
		WordCount: len(wordPattern.FindAllStringIndex(text, -1)),
		CharCount: utf8.RuneCountInString(text),
	}

	var lengths []float64
	for _, s := range sentenceEnd.Split(text, -1) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		stats.SentenceCount++
		lengths = append(lengths, float64(len(wordPattern.FindAllStringIndex(s, -1))))
	}
	stats.MeanSentenceLength, stats.SentenceLengthSD = meanStd(lengths)
	return stats
}

func meanStd(values []float64) (mean, sd float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if len(values) == 1 {
		return mean, 0
	}
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// per100 and perSentence return 0 instead of dividing by zero.
func per100(total, words int) float64 {
	if words == 0 {
		return 0
	}
	return float64(total) / float64(words) * 100
}

func perSentence(total, sentences int) float64 {
	return float64(total) / float64(max(sentences, 1))
}
