// Command fat16extract lists and extracts the contents of FAT16 disk images.
package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aligator/fat16"
)

// chunkSize is the unit in which file content is pulled out of the image.
const chunkSize = 64 * 1024

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "fat16extract",
		Short:        "Inspect and extract FAT16 disk images",
		SilenceUsage: true,
	}

	root.AddCommand(newLsCmd(), newExtractCmd())

	return root
}

func openImage(file string) (*fat16.Image, io.Closer, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}

	img, err := fat16.NewImageStrict(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%v: %w", file, err)
	}

	return img, f, nil
}

// walk enumerates the directory walked by entry and all subdirectories below
// it, calling fn with the image-relative path of every file and directory.
// Deleted records, dot records and the volume label are skipped; the first
// unused record ends a directory.
func walk(img *fat16.Image, entry fat16.Entry, dir string, fn func(entryPath string, entry *fat16.Entry) error) error {
	for img.NextEntry(&entry) {
		switch entry.Short.Kind() {
		case fat16.KindUnused:
			return nil
		case fat16.KindDeleted, fat16.KindDirectory:
			continue
		}

		if entry.Short.IsVolumeLabel() {
			continue
		}

		entryPath := path.Join(dir, entry.Filename())
		if err := fn(entryPath, &entry); err != nil {
			return err
		}

		if entry.Short.IsDirectory() {
			var child fat16.Entry
			if !img.FirstEntryOfDir(&entry, &child) {
				continue
			}

			if err := walk(img, child, entryPath, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <image>",
		Short: "List all files and directories of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, closer, err := openImage(args[0])
			if err != nil {
				return err
			}
			defer closer.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "volume %q (%s)\n", img.Label(), img.FSType())

			return walk(img, fat16.Entry{}, "", func(entryPath string, entry *fat16.Entry) error {
				kind := "f"
				if entry.Short.IsDirectory() {
					kind = "d"
				}
				_, err := fmt.Fprintf(out, "%s %10d  %s\n", kind, entry.Short.FileSize, entryPath)
				return err
			})
		},
	}
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <image> <destination>",
		Short: "Extract the whole directory tree of an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, closer, err := openImage(args[0])
			if err != nil {
				return err
			}
			defer closer.Close()

			hostFs := afero.NewOsFs()
			dest := args[1]
			if err := hostFs.MkdirAll(dest, 0o755); err != nil {
				return err
			}

			return walk(img, fat16.Entry{}, "", func(entryPath string, entry *fat16.Entry) error {
				target := filepath.Join(dest, filepath.FromSlash(entryPath))

				if entry.Short.IsDirectory() {
					return hostFs.MkdirAll(target, 0o755)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "extracting %s\n", entryPath)
				return extractFile(img, entry, hostFs, target)
			})
		},
	}
}

// extractFile copies one file out of the image in chunks.
func extractFile(img *fat16.Image, entry *fat16.Entry, hostFs afero.Fs, target string) error {
	out, err := hostFs.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	buf := make([]byte, chunkSize)
	left := entry.Short.FileSize
	var offset uint32

	for left > 0 {
		take := uint32(chunkSize)
		if left < take {
			take = left
		}

		if img.ReadFromCluster(buf[:take], offset, entry.Short.StartingCluster) != take {
			return fmt.Errorf("short read at offset %d of %s", offset, target)
		}

		if _, err := out.Write(buf[:take]); err != nil {
			return err
		}

		left -= take
		offset += take
	}

	return nil
}
