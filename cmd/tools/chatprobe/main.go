package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/mindshift/backend/internal/config"
	"github.com/zhouzirui/mindshift/backend/internal/identity"
	chatmodel "github.com/zhouzirui/mindshift/backend/internal/model/chat"
	"github.com/zhouzirui/mindshift/backend/internal/service/chat"
	"github.com/zhouzirui/mindshift/backend/internal/service/typing"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	seed := flag.Uint64("seed", 0, "随机种子，0 表示按时间生成")
	instant := flag.Bool("instant", false, "跳过打字延迟，立即输出回复")
	timeout := flag.Duration("timeout", 15*time.Second, "等待单条回复的超时时间")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	typingCfg := typing.Config{Tick: cfg.Typing.Tick, PerChar: cfg.Typing.PerChar}
	if *instant {
		typingCfg = typing.Config{Tick: time.Millisecond, PerChar: time.Millisecond, MinSafety: 10 * time.Millisecond, MaxSafety: 50 * time.Millisecond}
	}

	svc := chat.NewService(chat.Options{
		Identity: identity.Static(""),
		Typing:   typing.NewScheduler(typingCfg),
		Rand:     rand.New(rand.NewPCG(*seed, 0)),
	})
	defer svc.Close()

	ctx := context.Background()
	session, err := svc.CreateSession(ctx)
	if err != nil {
		log.Fatalf("创建会话失败: %v", err)
	}
	transcript, _ := svc.Transcript(ctx, session.ID)
	for _, msg := range transcript {
		printMessage(msg)
	}
	log.Printf("会话已创建 session=%s seed=%d，输入消息后回车，Ctrl-D 退出", session.ID, *seed)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		replies := make(chan chatmodel.Message, 1)
		if _, err := svc.SendMessage(ctx, session.ID, text, func(m chatmodel.Message) { replies <- m }); err != nil {
			log.Printf("[ERROR] 发送失败: %v", err)
			continue
		}

		select {
		case reply := <-replies:
			printMessage(reply)
		case <-time.After(*timeout):
			log.Printf("[ERROR] 等待回复超时 (%s)", *timeout)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("读取输入失败: %v", err)
	}
}

func printMessage(msg chatmodel.Message) {
	category := msg.Category
	if category == "" {
		category = "-"
	}
	fmt.Printf("[%s] %s\n", category, msg.Text)
}
