package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/noobtrump/lcache/pkg/codec"
)

// FileStore keeps the snapshot in a single local file. Saves go through a
// temporary file in the same directory followed by a rename, so a crash
// mid-write leaves the previous snapshot intact rather than a torn one.
//
// FileStore 将快照保存在单个本地文件中。保存先写入同目录的临时文件再重命名，
// 因此写入中途崩溃时留下的是上一份完整快照而不是残缺文件。
type FileStore[K comparable, V any] struct {
	path  string
	codec codec.Codec
	perm  os.FileMode
}

// NewFileStore creates a file-backed snapshot store. A nil codec means the
// default JSON codec.
//
// NewFileStore 创建基于文件的快照存储。codec为nil时使用默认JSON编解码器。
//
// Parameters:
//   - path: The snapshot file path; its directory must exist
//   - c: The codec used to encode snapshots, or nil for JSON
//
// Returns:
//   - *FileStore[K, V]: The store
func NewFileStore[K comparable, V any](path string, c codec.Codec) *FileStore[K, V] {
	if c == nil {
		c = codec.DefaultCodec()
	}
	return &FileStore[K, V]{
		path:  path,
		codec: c,
		perm:  0o644,
	}
}

// Save writes the snapshot atomically: encode, write to a temporary file,
// fsync, then rename over the destination.
//
// Save 原子地写入快照：编码、写入临时文件、fsync、再重命名覆盖目标文件。
func (s *FileStore[K, V]) Save(ctx context.Context, snap *Snapshot[K, V]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.codec.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.perm)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if _, err = f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err = f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot file: %w", err)
	}

	if err = os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename snapshot file: %w", err)
	}
	return nil
}

// Load reads and decodes the snapshot file. A missing or empty file yields
// (nil, nil): nothing has been saved yet. Undecodable content yields
// ErrSnapshotCorrupt and a version mismatch ErrSnapshotVersion, both wrapped
// with detail.
//
// Load 读取并解码快照文件。文件缺失或为空时返回(nil, nil)，表示尚未保存过。
// 无法解码的内容返回ErrSnapshotCorrupt，版本不匹配返回ErrSnapshotVersion，
// 均附带细节。
func (s *FileStore[K, V]) Load(ctx context.Context) (*Snapshot[K, V], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	// An interrupted first save can leave an empty file; treat it like no
	// snapshot rather than corruption.
	// 首次保存被中断可能留下空文件，按无快照处理而非视为损坏。
	if len(data) == 0 {
		return nil, nil
	}

	return decodeSnapshot[K, V](s.codec, data)
}

// Path returns the snapshot file path.
// Path 返回快照文件路径。
func (s *FileStore[K, V]) Path() string {
	return s.path
}

// EnsureDir creates the snapshot file's directory if it does not exist.
// EnsureDir 在快照文件所在目录不存在时创建它。
func (s *FileStore[K, V]) EnsureDir() error {
	return os.MkdirAll(filepath.Dir(s.path), 0o755)
}
