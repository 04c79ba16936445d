package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/haierkeys/product-note-service/internal/domain"
	"github.com/haierkeys/product-note-service/internal/middleware"
	"github.com/haierkeys/product-note-service/pkg/fileurl"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultAuthTokenPlaceholder is replaced with a random token when the default config is written
const defaultAuthTokenPlaceholder = "product-note-Auth-Token"

type runFlags struct {
	dir     string // Project root directory // 项目根目录
	port    string // Startup port // 启动端口
	runMode string // Startup mode // 启动模式
	config  string // Specified configuration file path // 指定要使用的配置文件路径
}

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if len(runEnv.dir) > 0 {
				err := os.Chdir(runEnv.dir)
				if err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
				}
				bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
			}

			if len(runEnv.config) <= 0 {
				path, err := resolveConfigPath()
				if err != nil {
					bootstrapLogger.Error("config file auto create error", zap.Error(err))
					return
				}
				runEnv.config = path
			}

			// collectors register on the default registry, so they live across reloads
			metrics := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)

			s, err := NewServer(runEnv, metrics)
			if err != nil {
				bootstrapLogger.Error("api service start err", zap.Error(err))
				return
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			s.Start(ctx)

			var mu sync.Mutex
			current := func() *Server {
				mu.Lock()
				defer mu.Unlock()
				return s
			}

			w := watcher.New()

			// 将 SetMaxEvents 设置为 1，以便在每个监听周期中至多接收 1 个事件
			w.SetMaxEvents(1)
			// 只通知写入事件
			w.FilterOps(watcher.Write)

			go func() {
				for {
					select {
					case event := <-w.Event:
						mu.Lock()
						s.logger.Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))
						if err := s.Stop(); err != nil {
							s.logger.Error("server stop before reload", zap.Error(err))
						}

						// 重新初始化 server
						next, err := NewServer(runEnv, metrics)
						if err != nil {
							bootstrapLogger.Error("service restart err", zap.Error(err))
							mu.Unlock()
							continue
						}
						next.Start(ctx)
						s = next
						mu.Unlock()
					case err := <-w.Error:
						current().logger.Error("config watcher error", zap.Error(err))
					case <-w.Closed:
						bootstrapLogger.Info("config watcher closed")
						return
					}
				}
			}()

			// 监听配置文件
			if err := w.Add(runEnv.config); err != nil {
				s.logger.Error("config watcher file error", zap.Error(err))
			}
			go func() {
				if err := w.Start(time.Second * 5); err != nil {
					current().logger.Error("config watcher start error", zap.Error(err))
				}
			}()
			defer w.Close()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			srv := current()
			srv.logger.Info("Received shutdown signal, initiating graceful shutdown...")

			mu.Lock()
			err = s.Stop()
			mu.Unlock()

			if err != nil {
				srv.logger.Error("Shutdown completed with error", zap.Error(err))
			} else {
				srv.logger.Info("Service has been shut down gracefully.")
			}
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}

// resolveConfigPath 查找配置文件，不存在时写入默认配置
func resolveConfigPath() (string, error) {
	for _, p := range []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"} {
		if fileurl.IsExist(p) {
			return p, nil
		}
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	path := "config/config.yaml"

	content := strings.Replace(configDefault, defaultAuthTokenPlaceholder, domain.NewID(), 1)

	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}

	bootstrapLogger.Info("config file auto create successfully", zap.String("path", path))
	return path, nil
}
