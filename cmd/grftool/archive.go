package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/grf-graphics/internal/logger"
	"github.com/Faultbox/grf-graphics/pkg/grf"
)

func cmdInfo(c *cli, args []string) error {
	fs := c.newFlagSet()
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: grftool info <file.grf>", errUsage)
	}

	archive, err := grf.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer archive.Close()

	files := archive.List()
	extCount := make(map[string]int)
	var totalSize uint64
	encrypted := 0
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		if ext == "" {
			ext = "(no ext)"
		}
		extCount[ext]++
		if e, ok := archive.Entry(f); ok {
			totalSize += uint64(e.UncompressedSize)
			if e.Encrypted() {
				encrypted++
			}
		}
	}

	out := c.stdout
	fmt.Fprintf(out, "Archive:   %s\n", fs.Arg(0))
	fmt.Fprintf(out, "Version:   0x%x\n", archive.Header().Version)
	fmt.Fprintf(out, "Files:     %d\n", len(files))
	fmt.Fprintf(out, "Encrypted: %d\n", encrypted)
	fmt.Fprintf(out, "Size:      %.2f MB\n", float64(totalSize)/(1024*1024))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Files by type:")

	type extStat struct {
		ext   string
		count int
	}
	var stats []extStat
	for ext, count := range extCount {
		stats = append(stats, extStat{ext, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].ext < stats[j].ext
	})
	for _, s := range stats {
		fmt.Fprintf(out, "  %-10s %d\n", s.ext, s.count)
	}
	return nil
}

// matchFile reports whether f matches a glob on its base name or contains
// pattern. pattern must be lower case.
func matchFile(f, pattern string) bool {
	if pattern == "" {
		return true
	}
	lower := strings.ToLower(f)
	matched, _ := filepath.Match(pattern, filepath.Base(lower))
	return matched || strings.Contains(lower, pattern)
}

func cmdList(c *cli, args []string) error {
	fs := c.newFlagSet()
	limit := fs.Int("n", 0, "Limit output to N files (0 = all)")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: grftool list <file.grf> [pattern]", errUsage)
	}

	archive, err := grf.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer archive.Close()

	pattern := strings.ToLower(fs.Arg(1))
	count := 0
	for _, f := range archive.List() {
		if !matchFile(f, pattern) {
			continue
		}
		fmt.Fprintln(c.stdout, f)
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}
	logger.Debug("listed files", zap.Int("count", count), zap.String("pattern", pattern))
	return nil
}

func cmdExtract(c *cli, args []string) error {
	fs := c.newFlagSet()
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("%w: grftool extract <file.grf> <path> [output_dir]", errUsage)
	}

	filePath := fs.Arg(1)
	outputDir := "."
	if fs.NArg() > 2 {
		outputDir = fs.Arg(2)
	}

	archive, err := grf.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer archive.Close()

	if strings.Contains(filePath, "*") {
		return extractPattern(c, archive, filePath, outputDir)
	}

	data, err := archive.Read(filePath)
	if err != nil {
		return err
	}
	outputPath := filepath.Join(outputDir, filepath.Base(filepath.FromSlash(normalizeSlashes(filePath))))
	if err := writeFile(outputPath, data); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Extracted: %s (%d bytes)\n", outputPath, len(data))
	return nil
}

func extractPattern(c *cli, archive *grf.Archive, pattern, outputDir string) error {
	pattern = strings.ToLower(pattern)

	extracted := 0
	for _, f := range archive.List() {
		matched, _ := filepath.Match(pattern, filepath.Base(f))
		if !matched {
			continue
		}

		data, err := archive.Read(f)
		if err != nil {
			logger.Warn("skipping file", zap.String("path", f), zap.Error(err))
			continue
		}

		// Keep the archive directory layout.
		outputPath := filepath.Join(outputDir, filepath.FromSlash(f))
		if err := writeFile(outputPath, data); err != nil {
			logger.Warn("skipping file", zap.String("path", outputPath), zap.Error(err))
			continue
		}
		fmt.Fprintf(c.stdout, "Extracted: %s\n", outputPath)
		extracted++
	}

	logger.Info("extraction finished", zap.Int("files", extracted))
	return nil
}

func cmdSearch(c *cli, args []string) error {
	fs := c.newFlagSet()
	limit := fs.Int("n", 50, "Limit results (0 = all)")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("%w: grftool search <file.grf> <pattern>", errUsage)
	}

	archive, err := grf.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer archive.Close()

	pattern := strings.ToLower(fs.Arg(1))
	count := 0
	for _, f := range archive.List() {
		if !strings.Contains(f, pattern) {
			continue
		}
		fmt.Fprintln(c.stdout, f)
		count++
		if *limit > 0 && count >= *limit {
			logger.Info("result limit reached, use -n 0 for all", zap.Int("limit", *limit))
			break
		}
	}
	if count == 0 {
		logger.Info("no files found", zap.String("pattern", pattern))
	}
	return nil
}

func normalizeSlashes(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func cmdPack(c *cli, args []string) error {
	fs := c.newFlagSet()
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("%w: grftool pack <dir> <out.grf>", errUsage)
	}
	root, outPath := fs.Arg(0), fs.Arg(1)

	var files []grf.File
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, grf.File{Name: filepath.ToSlash(rel), Data: data})
		return nil
	})
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := grf.WriteArchive(out, files); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Packed %d files into %s\n", len(files), outPath)
	return nil
}
