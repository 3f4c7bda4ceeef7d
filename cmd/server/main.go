package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/palemoky/hunt-the-demon/internal/config"
	"github.com/palemoky/hunt-the-demon/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	gracefulTimeout := flag.Duration("graceful-timeout", 30*time.Minute, "优雅关闭时等待对局结束的上限")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	// 创建服务器
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("创建服务器失败: %v", err)
	}

	// 第一次信号进入维护模式等待对局结束，第二次直接关闭
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("收到关闭信号，进入维护模式等待对局结束（再按一次立即关闭）...")
		go func() {
			srv.GracefulShutdown(*gracefulTimeout)
			os.Exit(0)
		}()

		<-quit
		log.Println("正在强制关闭服务器...")
		srv.Shutdown()
		os.Exit(0)
	}()

	// 启动服务器
	log.Println("🎮 捉恶魔服务器启动中...")
	if err := srv.Start(); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
