package services

import (
	"strings"
	"unicode/utf8"
)

const defaultChunkSize = 1000

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText implements TextChunker. Chunks are built from whole sentences
// where possible and never exceed maxChunkSize runes. Every chunk after the
// first opens with the trailing words of the previous one, up to overlap
// runes. Input may be a single sanitized line or contain paragraph breaks.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var (
		chunks  []string
		current []string
		size    int
		fresh   bool
	)
	reset := func(seed string) {
		current = current[:0]
		size = 0
		if seed != "" {
			current = append(current, seed)
			size = utf8.RuneCountInString(seed)
		}
		fresh = false
	}

	for _, sentence := range splitSentences(text) {
		for _, seg := range fitSegments(sentence, maxChunkSize) {
			segLen := utf8.RuneCountInString(seg)
			if size > 0 && size+1+segLen > maxChunkSize {
				if fresh {
					chunk := strings.Join(current, " ")
					chunks = append(chunks, chunk)
					reset(overlapTail(chunk, overlap))
				}
				// The carried tail is dropped when it leaves no room.
				if size > 0 && size+1+segLen > maxChunkSize {
					reset("")
				}
			}

			if size > 0 {
				size++
			}
			current = append(current, seg)
			size += segLen
			fresh = true
		}
	}

	if fresh {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

// splitSentences breaks text at paragraph breaks and at words ending in
// sentence punctuation. Whitespace inside a sentence collapses to one space.
func splitSentences(text string) []string {
	var sentences []string
	for _, para := range strings.Split(text, "\n\n") {
		var words []string
		for _, word := range strings.Fields(para) {
			words = append(words, word)
			if strings.ContainsAny(word[len(word)-1:], ".!?") {
				sentences = append(sentences, strings.Join(words, " "))
				words = words[:0]
			}
		}
		if len(words) > 0 {
			sentences = append(sentences, strings.Join(words, " "))
		}
	}
	return sentences
}

// fitSegments splits a sentence longer than max runes into word runs, and
// words longer than max into rune slices.
func fitSegments(sentence string, max int) []string {
	if utf8.RuneCountInString(sentence) <= max {
		return []string{sentence}
	}

	var (
		segments []string
		run      []string
		size     int
	)
	for _, word := range strings.Fields(sentence) {
		for _, piece := range splitRunes(word, max) {
			pieceLen := utf8.RuneCountInString(piece)
			if size > 0 && size+1+pieceLen > max {
				segments = append(segments, strings.Join(run, " "))
				run = run[:0]
				size = 0
			}
			if size > 0 {
				size++
			}
			run = append(run, piece)
			size += pieceLen
		}
	}
	if len(run) > 0 {
		segments = append(segments, strings.Join(run, " "))
	}
	return segments
}

func splitRunes(word string, max int) []string {
	runes := []rune(word)
	if len(runes) <= max {
		return []string{word}
	}

	var pieces []string
	for start := 0; start < len(runes); start += max {
		end := start + max
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

// overlapTail returns the longest run of trailing words of chunk that fits
// in overlap runes.
func overlapTail(chunk string, overlap int) string {
	if overlap <= 0 {
		return ""
	}

	words := strings.Fields(chunk)
	start, size := len(words), 0
	for i := len(words) - 1; i >= 0; i-- {
		n := utf8.RuneCountInString(words[i])
		if size > 0 {
			n++
		}
		if size+n > overlap {
			break
		}
		size += n
		start = i
	}
	return strings.Join(words[start:], " ")
}
