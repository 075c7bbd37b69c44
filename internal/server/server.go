package server

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/Edwardzzz-c/gotrak/internal/apiserver"
	"github.com/Edwardzzz-c/gotrak/internal/config"
	grpc2 "github.com/Edwardzzz-c/gotrak/internal/controller/grpc"
	managerImpl "github.com/Edwardzzz-c/gotrak/internal/manager/trakstar"
	"github.com/Edwardzzz-c/gotrak/internal/pb"
	"github.com/Edwardzzz-c/gotrak/pkg/version"
)

type mainApp struct {
	name string
	cmd  *cobra.Command
	args []string
	opt  *config.TrackerOpt
}

func (a *mainApp) ProbeSensor() error {
	m := managerImpl.NewManager(a.opt)
	log.Infoln("Probing tracker devices...")
	res, err := m.ProbeDev()
	if err != nil {
		log.Errorln(err)
		return err
	}
	log.Infof("Found %d candidate ports:\n", len(res))
	for _, v := range res {
		fmt.Printf("- %s\n", v)
	}
	return nil
}

func (a *mainApp) GetOpt() *config.TrackerOpt {
	return a.opt
}

func (a *mainApp) SetOpt(opt *config.TrackerOpt) { a.opt = opt }

var app MainApp = nil

func (a *mainApp) Run() {
	var once sync.Once
	once.Do(func() {
		app = a
	})

	log.Infoln("version:", version.GitVersion)
	log.Infoln("grpc.port:", a.opt.GRPC.Port)
	log.Infoln("grpc.interface:", a.opt.GRPC.Interface)
	log.Infoln("api.port:", a.opt.API.Port)
	log.Infoln("api.interface:", a.opt.API.Interface)
	log.Infoln("device.driver:", a.opt.Device.Driver)
	log.Infoln("device.rate:", a.opt.Device.Rate)
	log.Infoln("debug:", a.opt.Debug)

	// start manager
	m := managerImpl.NewManager(a.opt)
	go managerImpl.Daemon(m)

	// install and start api server
	api := apiserver.New(m, a.opt)
	go func() {
		if err := api.Run(); err != nil {
			log.Errorln("api server exited:", err)
		}
	}()

	// install and start grpc server
	s := grpc.NewServer()
	grpcServer := grpc2.NewGRPCServer(m)
	pb.RegisterTrackerServiceServer(s, grpcServer)
	listener, err := net.Listen("tcp", a.opt.GRPC.Interface+":"+strconv.Itoa(a.opt.GRPC.Port))
	if err != nil {
		log.Errorln("net listen err ", err)
		return
	}
	log.Info("start gRPC listen on ", a.opt.GRPC.Interface+":"+strconv.Itoa(a.opt.GRPC.Port))
	if err := s.Serve(listener); err != nil {
		log.Errorln("failed to serve...", err)
		return
	}
}

func (a *mainApp) PrepareRun() MainApp {
	desc := config.NewTrackerDesc()
	err := desc.Parse(a.cmd)
	if err != nil {
		log.Errorln(err)
		os.Exit(1)
		return nil
	}
	desc.PostParse()
	a.opt = &desc.Opt
	a.name = config.DefaultAppName

	if a.opt.Debug {
		log.SetLevel(log.DebugLevel)
	}

	return a
}

type MainApp interface {
	Run()
	PrepareRun() MainApp
	GetOpt() *config.TrackerOpt
	SetOpt(*config.TrackerOpt)
	ProbeSensor() error
}

func NewMainApp(cmd *cobra.Command, args []string) MainApp {
	return &mainApp{
		cmd:  cmd,
		args: args,
	}
}
