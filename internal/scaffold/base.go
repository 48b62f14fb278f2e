package scaffold

import (
	"fmt"
	"path"
	"strings"

	"github.com/mvp-joe/blueprint/internal/generator"
)

// nestTsconfig is the compiler configuration every generated NestJS project
// starts from.
const nestTsconfig = `{
  "compilerOptions": {
    "module": "commonjs",
    "declaration": true,
    "removeComments": true,
    "emitDecoratorMetadata": true,
    "experimentalDecorators": true,
    "allowSyntheticDefaultImports": true,
    "target": "ES2021",
    "sourceMap": true,
    "outDir": "./dist",
    "baseUrl": "./",
    "incremental": true,
    "skipLibCheck": true,
    "strictNullChecks": false,
    "noImplicitAny": false,
    "strictBindCallApply": false,
    "forceConsistentCasingInFileNames": false,
    "noFallthroughCasesInSwitch": false
  }
}
`

const nestMainStub = `import { NestFactory } from '@nestjs/core';
import { ValidationPipe } from '@nestjs/common';
import { AppModule } from './app.module';

async function bootstrap() {
  const app = await NestFactory.create(AppModule);
  app.useGlobalPipes(new ValidationPipe({ whitelist: true, transform: true }));
  await app.listen(process.env.PORT || 3000);
}
bootstrap();
`

const nestAppModuleStub = `import { Module } from '@nestjs/common';
import { AppController } from './app.controller';
import { AppService } from './app.service';

@Module({
  imports: [],
  controllers: [AppController],
  providers: [AppService],
})
export class AppModule {}
`

const nestAppControllerStub = `import { Controller, Get } from '@nestjs/common';
import { AppService } from './app.service';

@Controller()
export class AppController {
  constructor(private readonly appService: AppService) {}

  @Get()
  getHello(): string {
    return this.appService.getHello();
  }
}
`

const nestAppServiceStub = `import { Injectable } from '@nestjs/common';

@Injectable()
export class AppService {
  getHello(): string {
    return 'Hello World!';
  }
}
`

const djangoManagePy = `#!/usr/bin/env python
import os
import sys

if __name__ == "__main__":
    os.environ.setdefault("DJANGO_SETTINGS_MODULE", "config.settings")
    try:
        from django.core.management import execute_from_command_line
    except ImportError as exc:
        raise ImportError(
            "Couldn't import Django. Are you sure it's installed?"
        ) from exc
    execute_from_command_line(sys.argv)
`

const djangoWsgiPy = `import os
from django.core.wsgi import get_wsgi_application

os.environ.setdefault('DJANGO_SETTINGS_MODULE', 'config.settings')

application = get_wsgi_application()
`

const djangoUrlsPy = `from django.contrib import admin
from django.urls import path, include
from django.conf import settings
from django.conf.urls.static import static

urlpatterns = [
    path('admin/', admin.site.urls),
]

if settings.DEBUG:
    urlpatterns += static(settings.MEDIA_URL, document_root=settings.MEDIA_ROOT)
`

const djangoSettingsBasePy = `import os
from pathlib import Path

BASE_DIR = Path(__file__).resolve().parent.parent.parent

SECRET_KEY = os.getenv('SECRET_KEY', 'django-insecure-dev-key')
DEBUG = os.getenv('DEBUG', 'True') == 'True'
ALLOWED_HOSTS = os.getenv('ALLOWED_HOSTS', 'localhost,127.0.0.1').split(',')

INSTALLED_APPS = [
    'django.contrib.admin',
    'django.contrib.auth',
    'django.contrib.contenttypes',
    'django.contrib.sessions',
    'django.contrib.messages',
    'django.contrib.staticfiles',
    'rest_framework',
]

MIDDLEWARE = [
    'django.middleware.security.SecurityMiddleware',
    'django.contrib.sessions.middleware.SessionMiddleware',
    'django.middleware.common.CommonMiddleware',
    'django.middleware.csrf.CsrfViewMiddleware',
    'django.contrib.auth.middleware.AuthenticationMiddleware',
    'django.contrib.messages.middleware.MessageMiddleware',
    'django.middleware.clickjacking.XFrameOptionsMiddleware',
]

ROOT_URLCONF = 'config.urls'

DATABASES = {
    'default': {
        'ENGINE': 'django.db.backends.sqlite3',
        'NAME': BASE_DIR / 'db.sqlite3',
    }
}

STATIC_URL = '/static/'
STATIC_ROOT = BASE_DIR / 'staticfiles'
MEDIA_URL = '/media/'
MEDIA_ROOT = BASE_DIR / 'media'

DEFAULT_AUTO_FIELD = 'django.db.models.BigAutoField'
`

// baseFile is one framework base-structure entry: a canonical path (relative
// to the source root for in-tree files, to the output root otherwise) and its
// stub content.
type baseFile struct {
	path       string
	content    string
	underRoot  bool // place under the source root like generated files
	skipIfOwns bool // skip when a classified file already claims the path
}

var nestBaseFiles = []baseFile{
	{path: "tsconfig.json", content: nestTsconfig},
	{path: "main.ts", content: nestMainStub, underRoot: true, skipIfOwns: true},
	{path: "app.module.ts", content: nestAppModuleStub, underRoot: true, skipIfOwns: true},
	{path: "app.controller.ts", content: nestAppControllerStub, underRoot: true, skipIfOwns: true},
	{path: "app.service.ts", content: nestAppServiceStub, underRoot: true, skipIfOwns: true},
}

var djangoBaseFiles = []baseFile{
	{path: "manage.py", content: djangoManagePy},
	{path: "config/__init__.py", content: ""},
	{path: "config/wsgi.py", content: djangoWsgiPy},
	{path: "config/urls.py", content: djangoUrlsPy},
	{path: "config/settings/__init__.py", content: "from .local import *\n"},
	{path: "config/settings/base.py", content: djangoSettingsBasePy, skipIfOwns: true},
	{path: "config/settings/local.py", content: "from .base import *\n\nDEBUG = True\n"},
	{path: "apps/__init__.py", content: ""},
	{path: "core/__init__.py", content: ""},
	{path: "services/__init__.py", content: ""},
}

// WriteBaseFiles writes the framework's base project structure around the
// generated tree. Stubs whose canonical path a classified file already
// claims are skipped, so document fragments always win over boilerplate
// defaults.
func (w *Writer) WriteBaseFiles(family, sourceRoot string, files []generator.ClassifiedFile) error {
	var base []baseFile
	switch family {
	case "nestjs":
		base = nestBaseFiles
	case "django":
		base = djangoBaseFiles
	default:
		return fmt.Errorf("no base structure for family %q", family)
	}

	claimed := make(map[string]bool, len(files))
	for _, f := range files {
		claimed[f.Path] = true
	}

	for _, bf := range base {
		if bf.skipIfOwns && claimed[bf.path] {
			continue
		}
		rel := bf.path
		if bf.underRoot && sourceRoot != "" {
			rel = path.Join(sourceRoot, bf.path)
		}
		if err := w.writeFile(rel, []byte(bf.content)); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
	}
	return nil
}

// WriteEnvExample renders the document's env fragments into .env.example.
// Documents without env fragments produce no file.
func (w *Writer) WriteEnvExample(doc *generator.Document) error {
	var blocks []string
	for _, f := range doc.Fragments() {
		if f.Language == "env" {
			blocks = append(blocks, f.Text)
		}
	}
	if len(blocks) == 0 {
		return nil
	}
	content := strings.Join(blocks, "\n\n") + "\n"
	return w.writeFile(".env.example", []byte(content))
}

// WriteReadme renders the project README listing the generated features and
// the family's setup instructions.
func (w *Writer) WriteReadme(family, projectName string, features []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", projectName)
	b.WriteString("## Features Included\n\n")
	for _, feature := range features {
		fmt.Fprintf(&b, "- %s\n", feature)
	}
	b.WriteString("\n## Setup\n\n")

	switch family {
	case "django":
		b.WriteString("```bash\n" +
			"python -m venv venv\n" +
			"source venv/bin/activate\n" +
			"pip install -r requirements.txt\n" +
			"python manage.py migrate\n" +
			"python manage.py runserver\n" +
			"```\n")
	default:
		b.WriteString("```bash\n" +
			"npm install\n" +
			"npm run start:dev\n" +
			"```\n")
	}

	return w.writeFile("README.md", []byte(b.String()))
}
